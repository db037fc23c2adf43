package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
)

// AccountFinder resolves the account behind verified claims.
type AccountFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Account, error)
}

// RequireAdmin lets the request through only when the authenticated account
// holds the admin role. It must be mounted after Auth.
func RequireAdmin(accounts AccountFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return domain.ErrUnauthorized
			}

			account, err := accounts.FindByID(c.Request().Context(), claims.UserID)
			if errors.Is(err, domain.ErrUserNotFound) {
				return domain.ErrForbidden
			}
			if err != nil {
				return err
			}
			if !account.IsAdmin() {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
