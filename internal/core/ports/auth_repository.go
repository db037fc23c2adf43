package ports

import (
	"context"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
)

// AccountRepository defines persistence for user accounts.
type AccountRepository interface {
	// Create stores a new account. Returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// List returns a page of accounts and the total count.
	List(ctx context.Context, offset, limit int) ([]*domain.Account, int64, error)
	// Delete removes an account. Returns domain.ErrUserNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
}
