package service

import (
	"bytes"
	"html/template"
	"time"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

const (
	kindRSVP    = "rsvp"
	kindWelcome = "welcome"
)

var rsvpTemplate = template.Must(template.New("rsvp").Parse(`<h2>Hi {{.Name}},</h2>
<p>Your RSVP for <strong>{{.Title}}</strong> is recorded as <strong>{{.Status}}</strong>.</p>
<ul>
  <li>Date: {{.Date}}</li>
  <li>Location: {{.Address}}</li>
  {{- if .AttendeeID}}
  <li>Attendee ID: {{.AttendeeID}}</li>
  {{- end}}
</ul>
<p>See you there!</p>`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<h2>Welcome, {{.Name}}!</h2>
<p>Your account is ready. Browse upcoming events and RSVP in one click.</p>`))

type rsvpEmail struct {
	Name       string
	Title      string
	Status     domain.RSVPStatus
	Date       string
	Address    string
	AttendeeID string
}

// rsvpNotification builds the confirmation sent after an accepted RSVP.
func rsvpNotification(event *domain.Event, attendee domain.Attendee) (ports.Notification, error) {
	var buf bytes.Buffer
	err := rsvpTemplate.Execute(&buf, rsvpEmail{
		Name:       attendee.Name,
		Title:      event.Title,
		Status:     attendee.Status,
		Date:       event.Date.UTC().Format(time.RFC1123),
		Address:    event.Location.Address,
		AttendeeID: attendee.ID,
	})
	if err != nil {
		return ports.Notification{}, err
	}
	return ports.Notification{
		To:       attendee.Email,
		Subject:  "RSVP Confirmation: " + event.Title,
		HTML:     buf.String(),
		DedupKey: kindRSVP + ":" + event.ID + ":" + attendee.Email,
		Kind:     kindRSVP,
	}, nil
}

func welcomeNotification(account *domain.Account) (ports.Notification, error) {
	var buf bytes.Buffer
	if err := welcomeTemplate.Execute(&buf, account); err != nil {
		return ports.Notification{}, err
	}
	return ports.Notification{
		To:       account.Email,
		Subject:  "Welcome to Event RSVP",
		HTML:     buf.String(),
		DedupKey: kindWelcome + ":" + account.ID,
		Kind:     kindWelcome,
	}, nil
}
