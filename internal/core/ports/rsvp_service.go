package ports

import (
	"context"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
)

// RSVPResult is returned after an accepted RSVP.
type RSVPResult struct {
	Event *domain.Event
	// AttendeeID is empty unless the response was Going.
	AttendeeID string
}

// RSVPService applies RSVPs and reports on attendee lists.
type RSVPService interface {
	RSVP(ctx context.Context, eventID string, claims domain.Claims, status string) (*RSVPResult, error)
	Attendees(ctx context.Context, eventID string, page domain.Page) (*domain.AttendeePage, error)
	Summary(ctx context.Context, eventID, status string, page domain.Page) (*domain.RSVPSummary, error)
}
