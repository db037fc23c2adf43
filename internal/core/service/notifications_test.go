package service

import (
	"strings"
	"testing"
	"time"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
)

func TestRSVPNotification(t *testing.T) {
	event := &domain.Event{
		ID:       "evt-1",
		Title:    "Book <club>",
		Date:     time.Date(2026, 3, 4, 19, 0, 0, 0, time.UTC),
		Location: domain.Location{Address: "12 Library Rd"},
	}
	going := domain.Attendee{ID: "att-9", Name: "Ana", Email: "ana@example.com", Status: domain.StatusGoing}

	n, err := rsvpNotification(event, going)
	if err != nil {
		t.Fatalf("rsvpNotification: %v", err)
	}
	if n.To != "ana@example.com" || n.DedupKey != "rsvp:evt-1:ana@example.com" {
		t.Fatalf("unexpected envelope: %+v", n)
	}
	for _, want := range []string{"Book &lt;club&gt;", "12 Library Rd", "att-9", "Going"} {
		if !strings.Contains(n.HTML, want) {
			t.Errorf("body missing %q:\n%s", want, n.HTML)
		}
	}

	maybe := domain.Attendee{Name: "Ben", Email: "ben@example.com", Status: domain.StatusMaybe}
	n, err = rsvpNotification(event, maybe)
	if err != nil {
		t.Fatalf("rsvpNotification: %v", err)
	}
	if strings.Contains(n.HTML, "Attendee ID") {
		t.Errorf("Maybe response must not mention an attendee id")
	}
}

func TestWelcomeNotification(t *testing.T) {
	n, err := welcomeNotification(&domain.Account{ID: "acc-1", Name: "Cleo", Email: "cleo@example.com"})
	if err != nil {
		t.Fatalf("welcomeNotification: %v", err)
	}
	if n.To != "cleo@example.com" || !strings.Contains(n.HTML, "Cleo") || n.Kind != kindWelcome {
		t.Fatalf("unexpected notification: %+v", n)
	}
}
