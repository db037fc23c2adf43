package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

const smallPNG = "data:image/png;base64,iVBORw0KGgo="

func validEventInput() ports.EventInput {
	return ports.EventInput{
		Title:        "Launch party",
		Description:  "Drinks on the roof",
		Date:         "2026-11-20T18:30:00Z",
		MaxAttendees: 50,
		Location:     &ports.LocationInput{Address: "1 Main St"},
	}
}

func oversizedImage() string {
	// 4*ceil(n/3)*0.5625/1024 > 500 once n is roughly 683k characters.
	return "data:image/png;base64," + strings.Repeat("A", 700_000)
}

func newEventSvc(repo *stubEventRepo, images *stubImageStore) ports.EventService {
	return NewEventService(repo, images, 1<<20, zerolog.Nop())
}

func TestEventService_Create_Success(t *testing.T) {
	repo := newStubEventRepo()
	svc := newEventSvc(repo, &stubImageStore{})

	in := validEventInput()
	in.Image = smallPNG
	lat := 40.7
	in.Location.Lat = &lat

	event, err := svc.CreateEvent(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}
	if event.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
	if !event.Date.Equal(time.Date(2026, 11, 20, 18, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", event.Date)
	}
	if event.MaxAttendees != 50 || event.Image != smallPNG {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Location.Lat == nil || *event.Location.Lat != 40.7 || event.Location.Lng != nil {
		t.Fatalf("unexpected location: %+v", event.Location)
	}
	if event.Attendees == nil || len(event.Attendees) != 0 {
		t.Fatalf("expected empty attendee list, got %v", event.Attendees)
	}
}

func TestEventService_Create_MissingFields(t *testing.T) {
	svc := newEventSvc(newStubEventRepo(), &stubImageStore{})

	mutations := map[string]func(*ports.EventInput){
		"title":        func(in *ports.EventInput) { in.Title = "" },
		"description":  func(in *ports.EventInput) { in.Description = "" },
		"date":         func(in *ports.EventInput) { in.Date = "" },
		"maxAttendees": func(in *ports.EventInput) { in.MaxAttendees = 0 },
		"location":     func(in *ports.EventInput) { in.Location = nil },
		"address":      func(in *ports.EventInput) { in.Location.Address = "  " },
	}
	for name, mutate := range mutations {
		in := validEventInput()
		mutate(&in)
		_, err := svc.CreateEvent(context.Background(), in)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) || verr.Msg != "Missing required fields" {
			t.Errorf("%s: expected Missing required fields, got %v", name, err)
		}
	}
}

func TestEventService_Create_InvalidValues(t *testing.T) {
	svc := newEventSvc(newStubEventRepo(), &stubImageStore{})

	tests := []struct {
		name   string
		mutate func(*ports.EventInput)
		msg    string
	}{
		{"bad date", func(in *ports.EventInput) { in.Date = "next tuesday" }, "Invalid date"},
		{"negative capacity", func(in *ports.EventInput) { in.MaxAttendees = -3 }, "maxAttendees must be a positive integer"},
		{"fractional capacity", func(in *ports.EventInput) { in.MaxAttendees = 2.5 }, "maxAttendees must be a positive integer"},
		{"gif image", func(in *ports.EventInput) { in.Image = "data:image/gif;base64,R0lGOD" }, "Invalid image format. Must be a base64 png or jpeg data URI"},
		{"oversized image", func(in *ports.EventInput) { in.Image = oversizedImage() }, "Image size exceeds 500KB limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validEventInput()
			tt.mutate(&in)
			_, err := svc.CreateEvent(context.Background(), in)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) || verr.Msg != tt.msg {
				t.Fatalf("expected %q, got %v", tt.msg, err)
			}
		})
	}
}

func TestEventService_Create_Upload(t *testing.T) {
	images := &stubImageStore{}
	svc := newEventSvc(newStubEventRepo(), images)

	in := validEventInput()
	in.Upload = &ports.ImageUpload{Filename: "cover.png", ContentType: "image/png", Size: 1024, Body: strings.NewReader("png")}
	event, err := svc.CreateEvent(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}
	if event.Image != "/api/uploads/img-1" || len(images.saved) != 1 {
		t.Fatalf("expected upload reference, got %q", event.Image)
	}

	in.Upload = &ports.ImageUpload{Filename: "cover.gif", ContentType: "image/gif", Size: 10, Body: strings.NewReader("gif")}
	if _, err := svc.CreateEvent(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected gif upload to be rejected, got %v", err)
	}
	in.Upload = &ports.ImageUpload{Filename: "big.png", ContentType: "image/png", Size: 2 << 20, Body: strings.NewReader("png")}
	if _, err := svc.CreateEvent(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected oversized upload to be rejected, got %v", err)
	}
	if len(images.saved) != 1 {
		t.Fatalf("rejected uploads must not be stored, saved=%d", len(images.saved))
	}
}

func TestEventService_FailedWriteRemovesUpload(t *testing.T) {
	repo := newStubEventRepo()
	images := &stubImageStore{}
	svc := newEventSvc(repo, images)
	seeded := repo.seed(domain.Event{Title: "T", Location: domain.Location{Address: "A"}})
	writeErr := errors.New("insert failed")
	repo.writeErr = writeErr

	in := validEventInput()
	in.Upload = &ports.ImageUpload{Filename: "cover.png", ContentType: "image/png", Size: 1024, Body: strings.NewReader("png")}
	if _, err := svc.CreateEvent(context.Background(), in); !errors.Is(err, writeErr) {
		t.Fatalf("expected insert error, got %v", err)
	}
	if len(images.deleted) != 1 || images.deleted[0] != "/api/uploads/img-1" {
		t.Fatalf("expected the stored upload to be removed, deleted=%v", images.deleted)
	}

	_, err := svc.UpdateEvent(context.Background(), seeded.ID, ports.EventInput{
		Upload: &ports.ImageUpload{ContentType: "image/jpeg", Size: 10, Body: strings.NewReader("jpg")},
	})
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected update error, got %v", err)
	}
	if len(images.deleted) != 2 || images.deleted[1] != "/api/uploads/img-2" {
		t.Fatalf("expected the edit upload to be removed, deleted=%v", images.deleted)
	}

	if _, err := svc.CreateEvent(context.Background(), validEventInput()); !errors.Is(err, writeErr) {
		t.Fatalf("expected insert error, got %v", err)
	}
	if len(images.deleted) != 2 {
		t.Fatalf("nothing to remove without an upload, deleted=%v", images.deleted)
	}
}

func TestEventService_Update_TruthyOnly(t *testing.T) {
	repo := newStubEventRepo()
	svc := newEventSvc(repo, &stubImageStore{})
	seeded := repo.seed(domain.Event{
		Title:        "Old",
		Description:  "Old description",
		Date:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		MaxAttendees: 5,
		Location:     domain.Location{Address: "Old St"},
		Attendees:    []domain.Attendee{{Name: "A", Email: "a@example.com", Status: domain.StatusGoing}},
	})

	updated, err := svc.UpdateEvent(context.Background(), seeded.ID, ports.EventInput{Title: "New", MaxAttendees: 0, Description: ""})
	if err != nil {
		t.Fatalf("UpdateEvent returned error: %v", err)
	}
	if updated.Title != "New" {
		t.Fatalf("expected title to change, got %q", updated.Title)
	}
	if updated.Description != "Old description" || updated.MaxAttendees != 5 || updated.Location.Address != "Old St" {
		t.Fatalf("falsy fields must not overwrite: %+v", updated)
	}
	if len(updated.Attendees) != 1 {
		t.Fatalf("attendees must be preserved, got %v", updated.Attendees)
	}

	lng := -3.5
	updated, err = svc.UpdateEvent(context.Background(), seeded.ID, ports.EventInput{
		Location: &ports.LocationInput{Address: "New Ave", Lng: &lng},
		Date:     "2026-02-03",
	})
	if err != nil {
		t.Fatalf("UpdateEvent returned error: %v", err)
	}
	if updated.Location.Address != "New Ave" || updated.Location.Lat != nil || *updated.Location.Lng != -3.5 {
		t.Fatalf("location must be replaced wholesale: %+v", updated.Location)
	}
	if !updated.Date.Equal(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", updated.Date)
	}
}

func TestEventService_Update_Errors(t *testing.T) {
	repo := newStubEventRepo()
	svc := newEventSvc(repo, &stubImageStore{})
	seeded := repo.seed(domain.Event{Title: "T", Image: smallPNG, Location: domain.Location{Address: "A"}})

	if _, err := svc.UpdateEvent(context.Background(), "missing", ports.EventInput{Title: "x"}); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	if _, err := svc.UpdateEvent(context.Background(), seeded.ID, ports.EventInput{Image: oversizedImage()}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected oversized image to be rejected, got %v", err)
	}
	if _, err := svc.UpdateEvent(context.Background(), seeded.ID, ports.EventInput{Location: &ports.LocationInput{}}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected missing address to be rejected, got %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), seeded.ID)
	if stored.Image != smallPNG {
		t.Fatalf("rejected edit must not change the image")
	}
}

func TestEventService_Update_UploadOverridesInlineImage(t *testing.T) {
	repo := newStubEventRepo()
	svc := newEventSvc(repo, &stubImageStore{})
	seeded := repo.seed(domain.Event{Title: "T", Location: domain.Location{Address: "A"}})

	updated, err := svc.UpdateEvent(context.Background(), seeded.ID, ports.EventInput{
		Image:  smallPNG,
		Upload: &ports.ImageUpload{ContentType: "image/jpeg", Size: 10, Body: strings.NewReader("jpg")},
	})
	if err != nil {
		t.Fatalf("UpdateEvent returned error: %v", err)
	}
	if updated.Image != "/api/uploads/img-1" {
		t.Fatalf("expected upload to win, got %q", updated.Image)
	}
}

func TestEventService_GetAndList(t *testing.T) {
	repo := newStubEventRepo()
	svc := newEventSvc(repo, &stubImageStore{})
	for i := 0; i < 25; i++ {
		repo.seed(domain.Event{Title: "E"})
	}

	list, err := svc.ListEvents(context.Background(), domain.NewPage("3", "10"))
	if err != nil {
		t.Fatalf("ListEvents returned error: %v", err)
	}
	if len(list.Items) != 5 || list.Total != 25 || list.Page != 3 || list.TotalPages != 3 {
		t.Fatalf("unexpected list: items=%d total=%d page=%d pages=%d", len(list.Items), list.Total, list.Page, list.TotalPages)
	}

	if _, err := svc.GetEvent(context.Background(), "evt-1"); err != nil {
		t.Fatalf("GetEvent returned error: %v", err)
	}
	if _, err := svc.GetEvent(context.Background(), "nope"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}
