package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

// UploadHandler serves stored event images.
type UploadHandler struct {
	images ports.ImageStore
}

func NewUploadHandler(images ports.ImageStore) *UploadHandler {
	return &UploadHandler{images: images}
}

// Get handles GET /api/uploads/:id.
//
// @Summary      Download an event image
// @Tags         events
// @Produce      png,jpeg
// @Param        id   path  string  true  "Image ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  messageResponse
// @Router       /api/uploads/{id} [get]
func (h *UploadHandler) Get(c echo.Context) error {
	img, err := h.images.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	defer img.Body.Close()

	contentType := img.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	res := c.Response()
	if img.Size > 0 {
		res.Header().Set(echo.HeaderContentLength, strconv.FormatInt(img.Size, 10))
	}
	res.Header().Set("Cache-Control", "public, max-age=86400")
	return c.Stream(http.StatusOK, contentType, img.Body)
}
