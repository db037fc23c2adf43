package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/eventrsvp/rsvp-api/internal/api/middleware"
	"github.com/eventrsvp/rsvp-api/internal/core/domain"
)

var errInvalidBody = domain.Invalid("Invalid request body")

// ctxClaims returns the claims injected by the Auth middleware. Their absence
// means the route was mounted without Auth.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok || claims.UserID == "" {
		return domain.Claims{}, domain.ErrUnauthorized
	}
	return claims, nil
}

// queryPage normalises the page and limit query parameters.
func queryPage(c echo.Context) domain.Page {
	return domain.NewPage(c.QueryParam("page"), c.QueryParam("limit"))
}

// bind decodes the request body, keeping validation errors raised by custom
// field decoders and hiding everything else behind a generic message.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return verr
		}
		return errInvalidBody
	}
	return nil
}
