package handler

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

// messageResponse is the envelope for plain confirmations and errors.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     form:"name"     validate:"required"`
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
	Role     string `json:"role"     form:"role"`
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func toUserPayload(a *domain.Account) userPayload {
	return userPayload{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role}
}

// --- Events ---

// flexNumber accepts a JSON number, a numeric JSON string or a form value.
// Anything unparsable is treated as absent.
type flexNumber struct {
	Value float64
	Valid bool
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = flexNumber{}
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	return n.UnmarshalParam(s)
}

// UnmarshalParam implements echo.BindUnmarshaler for form fields.
func (n *flexNumber) UnmarshalParam(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*n = flexNumber{}
		return nil
	}
	*n = flexNumber{Value: v, Valid: true}
	return nil
}

func (n flexNumber) ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

type locationRequest struct {
	Address string     `json:"address"`
	Lat     flexNumber `json:"lat"`
	Lng     flexNumber `json:"lng"`
}

// locationField accepts the location as a JSON object or as a JSON-encoded
// string, which is how multipart clients send it.
type locationField struct {
	loc *locationRequest
}

func (l *locationField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" {
		l.loc = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return domain.Invalid("Invalid location")
		}
		return l.UnmarshalParam(raw)
	}
	var r locationRequest
	if err := json.Unmarshal(b, &r); err != nil {
		return domain.Invalid("Invalid location")
	}
	l.loc = &r
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for form fields.
func (l *locationField) UnmarshalParam(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		l.loc = nil
		return nil
	}
	var r locationRequest
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return domain.Invalid("Invalid location")
	}
	l.loc = &r
	return nil
}

type eventRequest struct {
	Title        string        `json:"title"        form:"title"`
	Description  string        `json:"description"  form:"description"`
	Date         string        `json:"date"         form:"date"`
	MaxAttendees flexNumber    `json:"maxAttendees" form:"maxAttendees" swaggertype:"number"`
	Location     locationField `json:"location"     form:"location"     swaggertype:"object"`
	// Image is an inline base64 data URI; uploads use the multipart "image" file part.
	Image string `json:"image" form:"image"`
}

func (r eventRequest) toInput() ports.EventInput {
	in := ports.EventInput{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Image:       r.Image,
	}
	if r.MaxAttendees.Valid {
		in.MaxAttendees = r.MaxAttendees.Value
	}
	if loc := r.Location.loc; loc != nil {
		in.Location = &ports.LocationInput{
			Address: loc.Address,
			Lat:     loc.Lat.ptr(),
			Lng:     loc.Lng.ptr(),
		}
	}
	return in
}

type createEventResponse struct {
	Success bool          `json:"success"`
	Data    *domain.Event `json:"data"`
}

type updateEventResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

type eventListResponse struct {
	Events     []*domain.Event `json:"events"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

// --- RSVP ---

type rsvpRequest struct {
	Status string `json:"status" form:"status"`
}

type rsvpResponse struct {
	Message    string        `json:"message"`
	Event      *domain.Event `json:"event"`
	AttendeeID string        `json:"attendeeID,omitempty"`
}

type attendeeListResponse struct {
	Attendees  []domain.Attendee `json:"attendees"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

type summaryResponse struct {
	Summary      domain.StatusCounts `json:"summary"`
	Attendees    []domain.Attendee   `json:"attendees"`
	Total        int                 `json:"total"`
	Page         int                 `json:"page"`
	TotalPages   int                 `json:"totalPages"`
	StatusFilter string              `json:"statusFilter"`
}

// --- Admin ---

type adminUsersResponse struct {
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Data       []*domain.Account `json:"data"`
}

type adminEventsResponse struct {
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	Data       []*domain.Event `json:"data"`
}
