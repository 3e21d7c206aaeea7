package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := NewToken("secret", "issuer", time.Minute, "user-1")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	subject, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if subject != "user-1" {
		t.Fatalf("expected subject user-1, got %s", subject)
	}
}

func TestTokenExpired(t *testing.T) {
	token, err := NewToken("secret", "issuer", -30*24*time.Hour, "user-1")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	_, err = ParseToken("secret", token)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	_, err := ParseToken("secret", "not-a-token")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewToken("secret", "issuer", time.Minute, "user-1")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	_, err = ParseToken("other-secret", token)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestTokenCorrupted(t *testing.T) {
	token, err := NewToken("secret", "issuer", time.Minute, "user-1")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	// Flip one character in the signature segment.
	flipped := token[:len(token)-1]
	if strings.HasSuffix(token, "A") {
		flipped += "B"
	} else {
		flipped += "A"
	}

	if _, err := ParseToken("secret", flipped); err == nil {
		t.Fatalf("expected corrupted token to fail verification")
	}
}
