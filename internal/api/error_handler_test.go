package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
	"github.com/eventrsvp/rsvp-api/internal/infrastructure/token"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", domain.Invalid("Missing required fields"), http.StatusBadRequest, "Missing required fields"},
		{"validation wrapped by bind", echo.NewHTTPError(http.StatusBadRequest, "x").SetInternal(domain.Invalid("Invalid location")), http.StatusBadRequest, "Invalid location"},
		{"invalid status", domain.ErrInvalidStatus, http.StatusBadRequest, "Invalid RSVP status"},
		{"already rsvpd", domain.ErrAlreadyRSVPd, http.StatusBadRequest, "Already RSVPd"},
		{"event full", domain.ErrEventFull, http.StatusBadRequest, "Event is full"},
		{"user exists", domain.ErrUserExists, http.StatusBadRequest, "Email already registered"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"expired token", token.ErrExpired, http.StatusUnauthorized, "Invalid token"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "Access denied. Admins only."},
		{"event not found", fmt.Errorf("load: %w", domain.ErrEventNotFound), http.StatusNotFound, "Event not found"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"route not found", echo.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Message != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, resp.Message)
			}
		})
	}
}
