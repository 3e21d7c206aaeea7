package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kushkushal/Clustorix-Admin/internal/auth"
	"github.com/Kushkushal/Clustorix-Admin/internal/crypto"
	"github.com/Kushkushal/Clustorix-Admin/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Please provide an email and password")
		return
	}

	if s.loginLocked(r.Context(), req.Email) {
		respondError(w, http.StatusTooManyRequests, "Too many failed login attempts, try again later")
		return
	}

	// The configured admin email is reserved: it authenticates against
	// configuration only and never reaches the store.
	if s.cfg.DefaultAdminEmail != "" && req.Email == s.cfg.DefaultAdminEmail {
		if req.Password != s.cfg.DefaultAdminPassword {
			s.recordLoginFailure(r.Context(), req.Email)
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.clearLoginFailures(r.Context(), req.Email)
		identity := auth.Identity{
			ID:    auth.DefaultAdminID,
			Name:  "Super Admin",
			Email: s.cfg.DefaultAdminEmail,
			Role:  auth.RoleSuperAdmin,
		}
		s.sendTokenResponse(w, http.StatusOK, identity)
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordLoginFailure(r.Context(), req.Email)
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("login lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := crypto.CheckPassword(user.PasswordHash, req.Password); err != nil {
		s.recordLoginFailure(r.Context(), req.Email)
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	s.clearLoginFailures(r.Context(), req.Email)
	s.sendTokenResponse(w, http.StatusOK, auth.IdentityOf(user))
}

// sendTokenResponse issues a credential for the identity and delivers it both
// as a cookie and in the JSON body, mirroring what the SPA expects.
func (s *Server) sendTokenResponse(w http.ResponseWriter, status int, identity auth.Identity) {
	token, err := auth.NewToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.TokenTTL, identity.ID)
	if err != nil {
		slog.Error("token issue failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.cfg.TokenTTL),
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: s.cfg.CookieSameSite,
	})

	writeJSON(w, status, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    identity,
	})
}

// handleLogout is stateless: it only tells the client to drop the credential
// by overwriting the cookie with an expired one. The token itself stays
// cryptographically valid until its natural expiry.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(time.Second),
		HttpOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: s.cfg.CookieSameSite,
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
		"data":    map[string]interface{}{},
	})
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	respondData(w, http.StatusOK, identity)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Please provide name, email and password")
		return
	}
	role := req.Role
	if role == "" {
		role = auth.RoleAdmin
	}
	if role != auth.RoleAdmin && role != auth.RoleSuperAdmin {
		respondError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		slog.Error("password hash failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(r.Context(), user); err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		slog.Error("user create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	s.sendTokenResponse(w, http.StatusCreated, auth.IdentityOf(user))
}

// handleInitAdmin bootstraps a persisted SuperAdmin from the configured
// credentials when none exists yet. One-time setup endpoint.
func (s *Server) handleInitAdmin(w http.ResponseWriter, r *http.Request) {
	if s.cfg.DefaultAdminEmail == "" || s.cfg.DefaultAdminPassword == "" {
		respondError(w, http.StatusInternalServerError, "Default admin credentials not configured")
		return
	}

	exists, err := s.store.SuperAdminExists(r.Context())
	if err != nil {
		slog.Error("super admin lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if exists {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "SuperAdmin already initialized",
		})
		return
	}

	hash, err := crypto.HashPassword(s.cfg.DefaultAdminPassword)
	if err != nil {
		slog.Error("password hash failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Name:         "Super Admin",
		Email:        s.cfg.DefaultAdminEmail,
		PasswordHash: hash,
		Role:         auth.RoleSuperAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(r.Context(), user); err != nil {
		slog.Error("super admin create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "SuperAdmin initialized successfully",
		"user": map[string]string{
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Failed-login throttling backed by redis. A missing redis client disables
// the throttle entirely.

func (s *Server) loginLocked(ctx context.Context, email string) bool {
	if s.redis == nil || s.cfg.LoginLockAttempts <= 0 {
		return false
	}
	count, err := s.redis.Get(ctx, loginFailureKey(email)).Int()
	if err != nil {
		return false
	}
	return count >= s.cfg.LoginLockAttempts
}

func (s *Server) recordLoginFailure(ctx context.Context, email string) {
	if s.redis == nil {
		return
	}
	key := loginFailureKey(email)
	count, err := s.redis.Incr(ctx, key).Result()
	if err != nil {
		slog.Warn("login throttle incr failed", "error", err)
		return
	}
	if count == 1 {
		_ = s.redis.Expire(ctx, key, s.cfg.LoginLockWindow).Err()
	}
}

func (s *Server) clearLoginFailures(ctx context.Context, email string) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, loginFailureKey(email)).Err()
}

func loginFailureKey(email string) string {
	return "login:failures:" + email
}
