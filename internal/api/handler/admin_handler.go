package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

// AdminHandler serves the admin maintenance routes. Every route is mounted
// behind Auth and RequireAdmin.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {object}  adminUsersResponse
// @Failure      401    {object}  messageResponse
// @Failure      403    {object}  messageResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	list, err := h.service.ListUsers(c.Request().Context(), queryPage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminUsersResponse{
		Total:      list.Total,
		Page:       list.Page,
		TotalPages: list.TotalPages,
		Data:       list.Items,
	})
}

// DeleteUser handles DELETE /api/admin/users/:id.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted"})
}

// ListEvents handles GET /api/admin/events.
//
// @Summary      List events (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10, max 100)"
// @Success      200    {object}  adminEventsResponse
// @Failure      403    {object}  messageResponse
// @Router       /api/admin/events [get]
func (h *AdminHandler) ListEvents(c echo.Context) error {
	list, err := h.service.ListEvents(c.Request().Context(), queryPage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminEventsResponse{
		Total:      list.Total,
		Page:       list.Page,
		TotalPages: list.TotalPages,
		Data:       list.Items,
	})
}

// DeleteEvent handles DELETE /api/admin/events/:id.
//
// @Summary      Delete an event
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/admin/events/{id} [delete]
func (h *AdminHandler) DeleteEvent(c echo.Context) error {
	if err := h.service.DeleteEvent(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Event deleted"})
}
