package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	meFn       func(ctx context.Context, claims domain.Claims) (*domain.Account, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, claims domain.Claims) (*domain.Account, error) {
	return s.meFn(ctx, claims)
}

type stubEventService struct {
	createFn func(ctx context.Context, in ports.EventInput) (*domain.Event, error)
	updateFn func(ctx context.Context, id string, in ports.EventInput) (*domain.Event, error)
	getFn    func(ctx context.Context, id string) (*domain.Event, error)
	listFn   func(ctx context.Context, page domain.Page) (*ports.EventList, error)
}

func (s *stubEventService) CreateEvent(ctx context.Context, in ports.EventInput) (*domain.Event, error) {
	return s.createFn(ctx, in)
}

func (s *stubEventService) UpdateEvent(ctx context.Context, id string, in ports.EventInput) (*domain.Event, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubEventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.getFn(ctx, id)
}

func (s *stubEventService) ListEvents(ctx context.Context, page domain.Page) (*ports.EventList, error) {
	return s.listFn(ctx, page)
}

type stubRSVPService struct {
	rsvpFn      func(ctx context.Context, eventID string, claims domain.Claims, status string) (*ports.RSVPResult, error)
	attendeesFn func(ctx context.Context, eventID string, page domain.Page) (*domain.AttendeePage, error)
	summaryFn   func(ctx context.Context, eventID, status string, page domain.Page) (*domain.RSVPSummary, error)
}

func (s *stubRSVPService) RSVP(ctx context.Context, eventID string, claims domain.Claims, status string) (*ports.RSVPResult, error) {
	return s.rsvpFn(ctx, eventID, claims, status)
}

func (s *stubRSVPService) Attendees(ctx context.Context, eventID string, page domain.Page) (*domain.AttendeePage, error) {
	return s.attendeesFn(ctx, eventID, page)
}

func (s *stubRSVPService) Summary(ctx context.Context, eventID, status string, page domain.Page) (*domain.RSVPSummary, error) {
	return s.summaryFn(ctx, eventID, status, page)
}

type stubAdminService struct {
	listUsersFn   func(ctx context.Context, page domain.Page) (*ports.AccountList, error)
	deleteUserFn  func(ctx context.Context, id string) error
	listEventsFn  func(ctx context.Context, page domain.Page) (*ports.EventList, error)
	deleteEventFn func(ctx context.Context, id string) error
}

func (s *stubAdminService) ListUsers(ctx context.Context, page domain.Page) (*ports.AccountList, error) {
	return s.listUsersFn(ctx, page)
}

func (s *stubAdminService) DeleteUser(ctx context.Context, id string) error {
	return s.deleteUserFn(ctx, id)
}

func (s *stubAdminService) ListEvents(ctx context.Context, page domain.Page) (*ports.EventList, error) {
	return s.listEventsFn(ctx, page)
}

func (s *stubAdminService) DeleteEvent(ctx context.Context, id string) error {
	return s.deleteEventFn(ctx, id)
}

type stubImageStore struct {
	openFn func(ctx context.Context, id string) (*ports.StoredImage, error)
}

func (s *stubImageStore) Save(ctx context.Context, upload ports.ImageUpload) (string, error) {
	return "", nil
}

func (s *stubImageStore) Open(ctx context.Context, id string) (*ports.StoredImage, error) {
	return s.openFn(ctx, id)
}

func (s *stubImageStore) Delete(ctx context.Context, ref string) error {
	return nil
}

// newContext builds an echo context with the validator installed. A non-empty
// body is sent as JSON.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withClaims(c echo.Context, userID string) {
	c.Set("claims", domain.Claims{UserID: userID})
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}
