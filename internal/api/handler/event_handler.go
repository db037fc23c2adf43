package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventrsvp/rsvp-api/internal/api/metrics"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

// EventHandler handles HTTP requests for event operations.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// Create handles POST /api/events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json,mpfd
// @Produce      json
// @Param        body   body      eventRequest  true   "Event details"
// @Param        image  formData  file          false  "Event image (png or jpeg)"
// @Success      200    {object}  createEventResponse
// @Failure      400    {object}  messageResponse
// @Failure      500    {object}  messageResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	in, closeUpload, err := eventInput(c)
	if err != nil {
		return err
	}
	defer closeUpload()

	event, err := h.service.CreateEvent(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.EventsCreatedTotal.Inc()
	return c.JSON(http.StatusOK, createEventResponse{Success: true, Data: event})
}

// Update handles PUT /api/events/:id. Only supplied fields change.
//
// @Summary      Edit an event
// @Tags         events
// @Accept       json,mpfd
// @Produce      json
// @Param        id     path      string        true   "Event ID"
// @Param        body   body      eventRequest  true   "Fields to change"
// @Param        image  formData  file          false  "Replacement image (png or jpeg)"
// @Success      200    {object}  updateEventResponse
// @Failure      400    {object}  messageResponse
// @Failure      404    {object}  messageResponse
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	in, closeUpload, err := eventInput(c)
	if err != nil {
		return err
	}
	defer closeUpload()

	event, err := h.service.UpdateEvent(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateEventResponse{Message: "Event updated successfully", Event: event})
}

// Get handles GET /api/events/:id.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.Event
// @Failure      404  {object}  messageResponse
// @Router       /api/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.service.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// List handles GET /api/events.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {object}  eventListResponse
// @Router       /api/events [get]
func (h *EventHandler) List(c echo.Context) error {
	list, err := h.service.ListEvents(c.Request().Context(), queryPage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventListResponse{
		Events:     list.Items,
		Total:      list.Total,
		Page:       list.Page,
		TotalPages: list.TotalPages,
	})
}

// eventInput decodes a JSON or multipart event body. The returned func closes
// the uploaded file, if any.
func eventInput(c echo.Context) (ports.EventInput, func(), error) {
	noop := func() {}

	var req eventRequest
	if err := bind(c, &req); err != nil {
		return ports.EventInput{}, noop, err
	}
	in := req.toInput()

	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return in, noop, nil
	}

	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, noop, nil
	}
	if err != nil {
		return ports.EventInput{}, noop, errInvalidBody
	}
	file, err := fh.Open()
	if err != nil {
		return ports.EventInput{}, noop, err
	}

	in.Upload = &ports.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        file,
	}
	return in, func() { _ = file.Close() }, nil
}
