package ports

import (
	"context"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
)

// EventRepository handles event persistence and atomic attendee appends.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// List returns events ordered by date ascending and the total count.
	List(ctx context.Context, offset, limit int) ([]*domain.Event, int64, error)
	// Update overwrites the scalar fields of an event. Attendees are never
	// written by Update so concurrent RSVPs are preserved.
	Update(ctx context.Context, event *domain.Event) (*domain.Event, error)
	// AppendAttendee pushes an attendee only if no attendee with the same email
	// exists and, when enforceCapacity is set, the list is below capacity.
	// Returns domain.ErrRSVPGuard when the condition did not hold.
	AppendAttendee(ctx context.Context, eventID string, attendee domain.Attendee, enforceCapacity bool) (*domain.Event, error)
	// Delete removes an event. Returns domain.ErrEventNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
}
