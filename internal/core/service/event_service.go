package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

type eventService struct {
	repo           ports.EventRepository
	images         ports.ImageStore
	maxUploadBytes int64
	log            zerolog.Logger
}

// NewEventService returns an EventService implementation. Uploaded images are
// persisted through images and capped at maxUploadBytes.
func NewEventService(repo ports.EventRepository, images ports.ImageStore, maxUploadBytes int64, log zerolog.Logger) ports.EventService {
	return &eventService{
		repo:           repo,
		images:         images,
		maxUploadBytes: maxUploadBytes,
		log:            log.With().Str("component", "events").Logger(),
	}
}

func (s *eventService) CreateEvent(ctx context.Context, in ports.EventInput) (*domain.Event, error) {
	if in.Title == "" || in.Description == "" || in.Date == "" || in.MaxAttendees == 0 ||
		in.Location == nil || strings.TrimSpace(in.Location.Address) == "" {
		return nil, domain.Invalid("Missing required fields")
	}

	date, err := domain.ParseEventDate(in.Date)
	if err != nil {
		return nil, err
	}
	capacity, err := capacityOf(in.MaxAttendees)
	if err != nil {
		return nil, err
	}
	if err := s.checkImage(in); err != nil {
		return nil, err
	}

	event := &domain.Event{
		Title:        in.Title,
		Description:  in.Description,
		Date:         date,
		MaxAttendees: capacity,
		Image:        in.Image,
		Location:     locationOf(in.Location),
		Attendees:    []domain.Attendee{},
	}
	if in.Upload != nil {
		ref, err := s.images.Save(ctx, *in.Upload)
		if err != nil {
			return nil, fmt.Errorf("create event: %w", err)
		}
		event.Image = ref
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create event")
		s.discardUpload(ctx, in, event.Image)
		return nil, err
	}

	s.log.Info().Str("event_id", created.ID).Int("max_attendees", created.MaxAttendees).Msg("event created")
	return created, nil
}

// UpdateEvent applies the truthy fields of in. Empty strings and zero values
// leave the stored value untouched, so a field cannot be cleared through edit.
func (s *eventService) UpdateEvent(ctx context.Context, id string, in ports.EventInput) (*domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkImage(in); err != nil {
		return nil, err
	}

	if in.Title != "" {
		event.Title = in.Title
	}
	if in.Description != "" {
		event.Description = in.Description
	}
	if in.Date != "" {
		date, err := domain.ParseEventDate(in.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}
	if in.MaxAttendees != 0 {
		capacity, err := capacityOf(in.MaxAttendees)
		if err != nil {
			return nil, err
		}
		event.MaxAttendees = capacity
	}
	if in.Image != "" {
		event.Image = in.Image
	}
	if in.Location != nil {
		if strings.TrimSpace(in.Location.Address) == "" {
			return nil, domain.Invalid("Location address is required")
		}
		event.Location = locationOf(in.Location)
	}
	if in.Upload != nil {
		ref, err := s.images.Save(ctx, *in.Upload)
		if err != nil {
			return nil, fmt.Errorf("update event: %w", err)
		}
		event.Image = ref
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		s.discardUpload(ctx, in, event.Image)
		return nil, err
	}
	s.log.Info().Str("event_id", updated.ID).Msg("event updated")
	return updated, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.FindByID(ctx, id)
}

// ListEvents returns events ordered by date ascending.
func (s *eventService) ListEvents(ctx context.Context, page domain.Page) (*ports.EventList, error) {
	return listEvents(ctx, s.repo, page)
}

func listEvents(ctx context.Context, repo ports.EventRepository, page domain.Page) (*ports.EventList, error) {
	items, total, err := repo.List(ctx, page.Offset, page.Limit)
	if err != nil {
		return nil, err
	}
	return &ports.EventList{
		Items:      items,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(total),
	}, nil
}

// discardUpload removes an image saved for a write that did not persist.
func (s *eventService) discardUpload(ctx context.Context, in ports.EventInput, ref string) {
	if in.Upload == nil {
		return
	}
	if err := s.images.Delete(context.WithoutCancel(ctx), ref); err != nil {
		s.log.Warn().Err(err).Str("image", ref).Msg("failed to remove orphaned upload")
	}
}

// checkImage validates the image fields before anything is persisted.
func (s *eventService) checkImage(in ports.EventInput) error {
	if in.Image != "" {
		if err := domain.ValidateImageDataURI(in.Image); err != nil {
			return err
		}
	}
	if in.Upload != nil {
		return domain.ValidateImageUpload(in.Upload.ContentType, in.Upload.Size, s.maxUploadBytes)
	}
	return nil
}

func capacityOf(v float64) (int, error) {
	if v <= 0 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, domain.Invalid("maxAttendees must be a positive integer")
	}
	return int(v), nil
}

func locationOf(in *ports.LocationInput) domain.Location {
	return domain.Location{
		Address: strings.TrimSpace(in.Address),
		Lat:     in.Lat,
		Lng:     in.Lng,
	}
}
