package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

// maxGuardAttempts bounds how often a rejected conditional push is reloaded
// and reclassified before giving up.
const maxGuardAttempts = 3

type rsvpService struct {
	events   ports.EventRepository
	accounts ports.AccountRepository
	notifier ports.Notifier
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

// NewRSVPService returns an RSVPService implementation.
func NewRSVPService(events ports.EventRepository, accounts ports.AccountRepository, notifier ports.Notifier, log zerolog.Logger) ports.RSVPService {
	return &rsvpService{
		events:   events,
		accounts: accounts,
		notifier: notifier,
		log:      log.With().Str("component", "rsvp").Logger(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// RSVP records the caller's response to an event. Uniqueness per email and
// capacity for Going are enforced by the repository's conditional append; the
// in-memory check only classifies the outcome.
func (s *rsvpService) RSVP(ctx context.Context, eventID string, claims domain.Claims, rawStatus string) (*ports.RSVPResult, error) {
	status, err := domain.ParseRSVPStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		if err := domain.CheckRSVP(event, account.Email, status); err != nil {
			return nil, err
		}

		attendee := domain.NewAttendee(account.Name, account.Email, status, s.now(), s.newID)
		updated, err := s.events.AppendAttendee(ctx, event.ID, attendee, status == domain.StatusGoing)
		if err == nil {
			s.log.Info().
				Str("event_id", updated.ID).
				Str("status", string(status)).
				Int("attendees", len(updated.Attendees)).
				Msg("rsvp recorded")
			s.notify(updated, attendee)
			return &ports.RSVPResult{Event: updated, AttendeeID: attendee.ID}, nil
		}
		if !errors.Is(err, domain.ErrRSVPGuard) {
			return nil, fmt.Errorf("rsvp: %w", err)
		}
		if attempt == maxGuardAttempts {
			s.log.Warn().Str("event_id", event.ID).Msg("rsvp guard kept rejecting")
			return nil, err
		}

		// Someone else changed the attendee list; reload and decide again.
		event, err = s.events.FindByID(ctx, event.ID)
		if err != nil {
			return nil, err
		}
	}
}

func (s *rsvpService) notify(event *domain.Event, attendee domain.Attendee) {
	n, err := rsvpNotification(event, attendee)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", event.ID).Msg("failed to render rsvp email")
		return
	}
	s.notifier.Notify(n)
}

// Attendees pages the unfiltered attendee list.
func (s *rsvpService) Attendees(ctx context.Context, eventID string, page domain.Page) (*domain.AttendeePage, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	p := domain.PageAttendees(event.Attendees, page)
	return &p, nil
}

// Summary counts every attendee and pages those matching rawStatus. An empty
// status or "All" disables the filter.
func (s *rsvpService) Summary(ctx context.Context, eventID, rawStatus string, page domain.Page) (*domain.RSVPSummary, error) {
	var filter *domain.RSVPStatus
	if rawStatus != "" && rawStatus != domain.AllStatuses {
		status := domain.RSVPStatus(rawStatus)
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		filter = &status
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	summary := domain.Summarize(event.Attendees, filter, page)
	return &summary, nil
}
