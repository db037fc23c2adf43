package ports

import (
	"context"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token   string
	Account *domain.Account
}

// AuthService covers account registration, login and identity lookup.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, claims domain.Claims) (*domain.Account, error)
}

// TokenSigner issues bearer tokens for an account.
type TokenSigner interface {
	Sign(accountID string) (string, error)
}

// TokenVerifier turns a bearer token into verified claims.
type TokenVerifier interface {
	Verify(token string) (domain.Claims, error)
}
