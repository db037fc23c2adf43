package ports

import (
	"context"
	"io"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
)

// LocationInput holds the location supplied with an event.
type LocationInput struct {
	Address string
	Lat     *float64
	Lng     *float64
}

// ImageUpload is a file received in a multipart request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// EventInput carries create and edit fields. Zero values mean "not supplied".
type EventInput struct {
	Title        string
	Description  string
	Date         string
	MaxAttendees float64
	Location     *LocationInput
	// Image is an inline base64 data URI.
	Image  string
	Upload *ImageUpload
}

// EventList is one page of events.
type EventList struct {
	Items      []*domain.Event
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// EventService defines use-case operations for events.
type EventService interface {
	CreateEvent(ctx context.Context, in EventInput) (*domain.Event, error)
	UpdateEvent(ctx context.Context, id string, in EventInput) (*domain.Event, error)
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	ListEvents(ctx context.Context, page domain.Page) (*EventList, error)
}
