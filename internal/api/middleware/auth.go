package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

const claimsKey = "claims"

// Auth validates the bearer token and stores the verified claims in the
// request context. Missing or malformed headers yield domain.ErrUnauthorized,
// rejected tokens domain.ErrInvalidToken.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.ErrUnauthorized
			}

			scheme, raw, ok := strings.Cut(authHeader, " ")
			raw = strings.TrimSpace(raw)
			if !ok || !strings.EqualFold(scheme, "bearer") || raw == "" {
				return domain.ErrUnauthorized
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				return err
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Auth.
func ClaimsFrom(c echo.Context) (domain.Claims, bool) {
	claims, ok := c.Get(claimsKey).(domain.Claims)
	return claims, ok
}
