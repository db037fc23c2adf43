package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

type adminService struct {
	accounts ports.AccountRepository
	events   ports.EventRepository
	log      zerolog.Logger
}

// NewAdminService returns an AdminService implementation.
func NewAdminService(accounts ports.AccountRepository, events ports.EventRepository, log zerolog.Logger) ports.AdminService {
	return &adminService{
		accounts: accounts,
		events:   events,
		log:      log.With().Str("component", "admin").Logger(),
	}
}

func (s *adminService) ListUsers(ctx context.Context, page domain.Page) (*ports.AccountList, error) {
	items, total, err := s.accounts.List(ctx, page.Offset, page.Limit)
	if err != nil {
		return nil, err
	}
	return &ports.AccountList{
		Items:      items,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(total),
	}, nil
}

// DeleteUser removes an account. Attendee records keyed by its email are left
// on their events.
func (s *adminService) DeleteUser(ctx context.Context, id string) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("account_id", id).Msg("account deleted")
	return nil
}

func (s *adminService) ListEvents(ctx context.Context, page domain.Page) (*ports.EventList, error) {
	return listEvents(ctx, s.events, page)
}

func (s *adminService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("event_id", id).Msg("event deleted")
	return nil
}
