package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

func TestAdminHandler_ListUsers(t *testing.T) {
	stub := &stubAdminService{
		listUsersFn: func(ctx context.Context, page domain.Page) (*ports.AccountList, error) {
			if page.Limit != domain.MaxLimit {
				t.Fatalf("expected capped limit, got %d", page.Limit)
			}
			return &ports.AccountList{
				Items:      []*domain.Account{{ID: "u1", Email: "a@example.com"}},
				Total:      1,
				Page:       1,
				TotalPages: 1,
			}, nil
		},
	}
	handler := NewAdminHandler(stub)

	c, rec := newContext(http.MethodGet, "/api/admin/users?limit=500", "")
	if err := handler.ListUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 1 || resp["total"] != float64(1) || resp["totalPages"] != float64(1) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAdminHandler_ListEvents(t *testing.T) {
	stub := &stubAdminService{
		listEventsFn: func(ctx context.Context, page domain.Page) (*ports.EventList, error) {
			return &ports.EventList{Items: []*domain.Event{{ID: "e1"}, {ID: "e2"}}, Total: 2, Page: 1, TotalPages: 1}, nil
		},
	}
	handler := NewAdminHandler(stub)

	c, rec := newContext(http.MethodGet, "/api/admin/events", "")
	if err := handler.ListEvents(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp adminEventsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 2 || len(resp.Data) != 2 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAdminHandler_Delete(t *testing.T) {
	stub := &stubAdminService{
		deleteUserFn: func(ctx context.Context, id string) error {
			if id != "u1" {
				return domain.ErrUserNotFound
			}
			return nil
		},
		deleteEventFn: func(ctx context.Context, id string) error {
			if id != "e1" {
				return domain.ErrEventNotFound
			}
			return nil
		},
	}
	handler := NewAdminHandler(stub)

	deleteUser := func(h *AdminHandler) echo.HandlerFunc { return h.DeleteUser }
	deleteEvent := func(h *AdminHandler) echo.HandlerFunc { return h.DeleteEvent }

	tests := []struct {
		name    string
		call    func(h *AdminHandler) echo.HandlerFunc
		id      string
		wantErr error
		wantMsg string
	}{
		{"user deleted", deleteUser, "u1", nil, "User deleted"},
		{"user missing", deleteUser, "u2", domain.ErrUserNotFound, ""},
		{"event deleted", deleteEvent, "e1", nil, "Event deleted"},
		{"event missing", deleteEvent, "e2", domain.ErrEventNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(http.MethodDelete, "/api/admin/x/"+tt.id, "")
			c.SetParamNames("id")
			c.SetParamValues(tt.id)

			err := tt.call(handler)(c)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}

			var resp messageResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Message != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, resp.Message)
			}
		})
	}
}
