package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/Kushkushal/Clustorix-Admin/internal/model"
)

type fakeUserSource struct {
	users map[string]model.User
	calls int
}

func (f *fakeUserSource) GetUserByID(_ context.Context, id string) (model.User, error) {
	f.calls++
	user, ok := f.users[id]
	if !ok {
		return model.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func TestResolveDefaultAdminSkipsStore(t *testing.T) {
	source := &fakeUserSource{}
	resolver := NewResolver("admin@clustorix.com", source)

	identity, err := resolver.Resolve(context.Background(), DefaultAdminID)
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if identity.Role != RoleSuperAdmin {
		t.Fatalf("expected SuperAdmin role, got %s", identity.Role)
	}
	if identity.Email != "admin@clustorix.com" {
		t.Fatalf("expected configured email, got %s", identity.Email)
	}
	if source.calls != 0 {
		t.Fatalf("sentinel subject must not hit the store")
	}
}

func TestResolvePersistedUser(t *testing.T) {
	source := &fakeUserSource{users: map[string]model.User{
		"user-1": {ID: "user-1", Name: "Jamie", Email: "jamie@x.com", PasswordHash: "$2a$10$hash", Role: RoleAdmin},
	}}
	resolver := NewResolver("admin@clustorix.com", source)

	identity, err := resolver.Resolve(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if identity.ID != "user-1" || identity.Role != RoleAdmin {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	payload, err := json.Marshal(identity)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if strings.Contains(string(payload), "hash") {
		t.Fatalf("serialized identity leaked the password hash: %s", payload)
	}
}

func TestResolveUnknownSubject(t *testing.T) {
	resolver := NewResolver("admin@clustorix.com", &fakeUserSource{})

	_, err := resolver.Resolve(context.Background(), "deleted-user")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
