package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Kushkushal/Clustorix-Admin/internal/model"
)

// DefaultAdminID is the sentinel subject for the environment-configured
// super admin. It never maps to a database row; every comparison against it
// belongs in this package.
const DefaultAdminID = "default-admin-id"

const (
	RoleSuperAdmin = "SuperAdmin"
	RoleAdmin      = "Admin"
)

var ErrNotFound = errors.New("identity not found")

// Identity is the resolved, role-bearing principal a request acts as.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserSource is the slice of the user store the resolver needs.
type UserSource interface {
	GetUserByID(ctx context.Context, id string) (model.User, error)
}

type Resolver struct {
	adminEmail string
	users      UserSource
}

func NewResolver(adminEmail string, users UserSource) *Resolver {
	return &Resolver{adminEmail: adminEmail, users: users}
}

// Resolve maps a verified token subject to an identity. The sentinel subject
// is answered from configuration without touching the store; any other
// subject is a user row lookup. A subject whose row no longer exists is an
// authentication failure, not a fault.
func (r *Resolver) Resolve(ctx context.Context, subject string) (Identity, error) {
	if subject == DefaultAdminID {
		return Identity{
			ID:    DefaultAdminID,
			Name:  "Super Admin",
			Email: r.adminEmail,
			Role:  RoleSuperAdmin,
		}, nil
	}

	user, err := r.users.GetUserByID(ctx, subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Identity{}, ErrNotFound
		}
		return Identity{}, err
	}
	return IdentityOf(user), nil
}

// IdentityOf projects a persisted user to its identity, dropping the
// password hash.
func IdentityOf(user model.User) Identity {
	return Identity{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}
