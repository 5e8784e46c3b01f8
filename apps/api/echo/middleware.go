package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/jltacademy/backend/core/user"
)

// adminMiddleware re-checks the admin role against the live user row,
// so a deleted or demoted account is cut off even with a valid token.
func adminMiddleware(svc *user.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx, svc)
			if err != nil {
				return err
			}
			if !usr.IsAdmin() {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}
