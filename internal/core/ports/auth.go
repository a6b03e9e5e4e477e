package ports

import (
	"context"

	"github.com/tastetrail/food-review-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// RegisterInput carries the registration fields from the transport layer.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult pairs the public user projection with a freshly minted
// bearer credential. The projection never carries the password hash.
type AuthResult struct {
	User  *domain.Identity
	Token string
}

// AuthService is the credential authority: it turns credentials into
// verified identities and gates operations by role.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Verify resolves a presented bearer token to the current identity,
	// re-reading the user from storage so stale claims never win.
	Verify(ctx context.Context, token string) (*domain.Identity, error)
	// Authorize returns domain.ErrForbidden unless the identity holds
	// the required role.
	Authorize(identity *domain.Identity, requiredRole string) error
}
