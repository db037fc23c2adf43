package ports

import (
	"context"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
)

// AccountList is one page of accounts.
type AccountList struct {
	Items      []*domain.Account
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AdminService covers the admin-only maintenance operations.
type AdminService interface {
	ListUsers(ctx context.Context, page domain.Page) (*AccountList, error)
	DeleteUser(ctx context.Context, id string) error
	ListEvents(ctx context.Context, page domain.Page) (*EventList, error)
	DeleteEvent(ctx context.Context, id string) error
}
