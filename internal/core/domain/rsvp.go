package domain

import "time"

// CheckRSVP decides whether email may respond to e with status.
//
// A repeated response is rejected whatever status is requested. Capacity is
// only consulted for Going, but it is compared against every attendee, so
// Maybe and Can't Go responses still take up slots.
func CheckRSVP(e *Event, email string, status RSVPStatus) error {
	if e.HasAttendee(email) {
		return ErrAlreadyRSVPd
	}
	if status == StatusGoing && e.Full() {
		return ErrEventFull
	}
	return nil
}

// NewAttendee builds the record appended for an accepted RSVP. newID is only
// called for Going responses.
func NewAttendee(name, email string, status RSVPStatus, now time.Time, newID func() string) Attendee {
	a := Attendee{
		Name:      name,
		Email:     email,
		Status:    status,
		Timestamp: now.UTC(),
	}
	if status == StatusGoing {
		a.ID = newID()
	}
	return a
}
