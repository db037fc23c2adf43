package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Domain errors first: bind failures wrap them inside an echo.HTTPError.
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Msg
	}

	switch {
	case errors.Is(err, domain.ErrAlreadyRSVPd):
		return http.StatusBadRequest, "Already RSVPd"
	case errors.Is(err, domain.ErrEventFull):
		return http.StatusBadRequest, "Event is full"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "Email already registered"
	case errors.Is(err, domain.ErrRSVPGuard):
		return http.StatusBadRequest, "RSVP could not be applied, please retry"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access denied. Admins only."
	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound, "Event not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrImageNotFound):
		return http.StatusNotFound, "Image not found"
	}

	// Echo's own errors (404 from router, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code != http.StatusInternalServerError {
		if m, ok := he.Message.(string); ok {
			return he.Code, m
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error"
}
