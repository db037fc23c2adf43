package domain

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrImageNotFound = errors.New("image not found")

	ErrAlreadyRSVPd = errors.New("already rsvpd")
	ErrEventFull    = errors.New("event is full")
	ErrUserExists   = errors.New("email already registered")

	// ErrRSVPGuard is returned by storage when the conditional attendee push
	// matched nothing; the caller must reload and reclassify.
	ErrRSVPGuard = errors.New("rsvp guard rejected update")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access denied")

	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = &ValidationError{Msg: "Invalid RSVP status"}
)

// ValidationError carries a client-facing message for rejected input.
// errors.Is(err, ErrInvalidInput) holds for every ValidationError.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid builds a ValidationError with msg.
func Invalid(msg string) error {
	return &ValidationError{Msg: msg}
}
