package domain

import "time"

// RSVPStatus is the response an attendee gave to an event invitation.
type RSVPStatus string

const (
	StatusGoing  RSVPStatus = "Going"
	StatusMaybe  RSVPStatus = "Maybe"
	StatusCantGo RSVPStatus = "Can't Go"
)

// Valid reports whether s is one of the accepted statuses.
func (s RSVPStatus) Valid() bool {
	switch s {
	case StatusGoing, StatusMaybe, StatusCantGo:
		return true
	}
	return false
}

// ParseRSVPStatus converts raw request input into a status. An empty string
// yields StatusGoing, matching the stored default.
func ParseRSVPStatus(raw string) (RSVPStatus, error) {
	if raw == "" {
		return StatusGoing, nil
	}
	s := RSVPStatus(raw)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Location is where an event takes place. Coordinates are optional.
type Location struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// Attendee is an RSVP record embedded in its parent Event. It has no
// lifecycle of its own.
type Attendee struct {
	// ID is only assigned to confirmed (Going) attendees.
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Status    RSVPStatus `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
}

// Confirmed reports whether the attendee holds a confirmed seat.
func (a Attendee) Confirmed() bool {
	return a.Status == StatusGoing && a.ID != ""
}

// Event is the aggregate root owning its attendee list.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	// MaxAttendees of zero means the event has no capacity limit.
	MaxAttendees int        `json:"maxAttendees"`
	Image        string     `json:"image,omitempty"`
	Location     Location   `json:"location"`
	Attendees    []Attendee `json:"attendees"`
}

// HasAttendee reports whether email already responded to the event.
func (e *Event) HasAttendee(email string) bool {
	for _, a := range e.Attendees {
		if a.Email == email {
			return true
		}
	}
	return false
}

// Full reports whether the attendee list reached capacity. Every attendee
// occupies a slot regardless of status.
func (e *Event) Full() bool {
	return e.MaxAttendees > 0 && len(e.Attendees) >= e.MaxAttendees
}
