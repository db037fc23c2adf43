package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventrsvp/rsvp-api/internal/api/metrics"
	"github.com/eventrsvp/rsvp-api/internal/core/domain"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

// RSVPHandler handles RSVPs and attendee reporting.
type RSVPHandler struct {
	service ports.RSVPService
}

func NewRSVPHandler(service ports.RSVPService) *RSVPHandler {
	return &RSVPHandler{service: service}
}

// RSVP handles POST /api/events/:id/rsvp.
//
// @Summary      RSVP to an event
// @Tags         rsvp
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Event ID"
// @Param        body  body      rsvpRequest  true  "Going, Maybe or Can't Go (default Going)"
// @Success      200   {object}  rsvpResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/events/{id}/rsvp [post]
func (h *RSVPHandler) RSVP(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req rsvpRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	label := "invalid"
	if status, err := domain.ParseRSVPStatus(req.Status); err == nil {
		label = string(status)
	}

	result, err := h.service.RSVP(c.Request().Context(), c.Param("id"), claims, req.Status)
	metrics.RSVPsTotal.WithLabelValues(label, rsvpOutcome(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rsvpResponse{
		Message:    "RSVP successful",
		Event:      result.Event,
		AttendeeID: result.AttendeeID,
	})
}

// Attendees handles GET /api/events/:id/attendees.
//
// @Summary      List attendees of an event
// @Tags         rsvp
// @Produce      json
// @Param        id     path      string  true   "Event ID"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Page size (default 10, max 100)"
// @Success      200    {object}  attendeeListResponse
// @Failure      404    {object}  messageResponse
// @Router       /api/events/{id}/attendees [get]
func (h *RSVPHandler) Attendees(c echo.Context) error {
	page, err := h.service.Attendees(c.Request().Context(), c.Param("id"), queryPage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attendeeListResponse{
		Attendees:  page.Attendees,
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	})
}

// Summary handles GET /api/events/:id/rsvp-summary.
//
// @Summary      RSVP summary of an event
// @Tags         rsvp
// @Produce      json
// @Param        id      path      string  true   "Event ID"
// @Param        status  query     string  false  "Going, Maybe or Can't Go"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Success      200     {object}  summaryResponse
// @Failure      400     {object}  messageResponse
// @Failure      404     {object}  messageResponse
// @Router       /api/events/{id}/rsvp-summary [get]
func (h *RSVPHandler) Summary(c echo.Context) error {
	summary, err := h.service.Summary(c.Request().Context(), c.Param("id"), c.QueryParam("status"), queryPage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaryResponse{
		Summary:      summary.Counts,
		Attendees:    summary.Attendees,
		Total:        summary.Total,
		Page:         summary.Page,
		TotalPages:   summary.TotalPages,
		StatusFilter: summary.StatusFilter,
	})
}

func rsvpOutcome(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, domain.ErrAlreadyRSVPd):
		return "already_rsvpd"
	case errors.Is(err, domain.ErrEventFull):
		return "full"
	case errors.Is(err, domain.ErrEventNotFound), errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	default:
		return "error"
	}
}
