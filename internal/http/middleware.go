package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Kushkushal/Clustorix-Admin/internal/auth"
)

const tokenCookieName = "token"

type identityKey struct{}

func identityFromContext(ctx context.Context) *auth.Identity {
	value := ctx.Value(identityKey{})
	identity, _ := value.(*auth.Identity)
	return identity
}

// extractToken pulls the credential off the request: Authorization header
// first, token cookie as fallback.
func extractToken(r *http.Request) string {
	if token := bearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	if cookie, err := r.Cookie(tokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// authMiddleware is the request checkpoint: extract, verify, resolve, attach.
// Every request is re-verified; nothing is cached between requests. Clients
// get a generic 401; the specific reason goes to the log only.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			slog.Warn("auth rejected", "reason", "no token", "path", r.URL.Path)
			respondError(w, http.StatusUnauthorized, "Not authorized")
			return
		}

		subject, err := auth.ParseToken(s.cfg.JWTSecret, token)
		if err != nil {
			slog.Warn("auth rejected", "reason", err.Error(), "path", r.URL.Path)
			respondError(w, http.StatusUnauthorized, "Not authorized")
			return
		}

		identity, err := s.resolver.Resolve(r.Context(), subject)
		if err != nil {
			if errors.Is(err, auth.ErrNotFound) {
				slog.Warn("auth rejected", "reason", "user not found", "subject", subject)
				respondError(w, http.StatusUnauthorized, "Not authorized")
				return
			}
			slog.Error("identity resolution failed", "error", err)
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey{}, &identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRoles restricts a route to the given roles. It must be composed
// after authMiddleware; a missing identity is reported as unauthenticated.
func requireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := identityFromContext(r.Context())
			if identity == nil {
				respondError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondError(w, http.StatusForbidden,
				"Role '"+identity.Role+"' is not authorized to access this route. Required: "+strings.Join(roles, " or "))
		})
	}
}

// corsMiddleware allows the configured origins with credentials and answers
// preflights with 204. Origins not on the list get no CORS headers; the
// browser enforces the rest.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Max-Age", "86400")
				w.Header().Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ipRateLimiter keeps a token bucket per client address. Stale buckets are
// pruned inline on the next lookup rather than by a background goroutine, so
// the limiter needs no shutdown hook.
type ipRateLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*clientLimiter
	limit      rate.Limit
	burst      int
	lastPruned time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPRateLimiter(perMinute, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters:   make(map[string]*clientLimiter),
		limit:      rate.Limit(float64(perMinute) / 60.0),
		burst:      burst,
		lastPruned: time.Now(),
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastPruned) >= 5*time.Minute {
		l.prune(now)
	}

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.Allow()
}

// prune drops buckets idle for over ten minutes. Caller holds the lock.
func (l *ipRateLimiter) prune(now time.Time) {
	cutoff := now.Add(-10 * time.Minute)
	for ip, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
	l.lastPruned = now
}

func (l *ipRateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r)) {
			respondError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return host
}
