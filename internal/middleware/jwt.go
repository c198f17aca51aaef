package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/identity"
)

// Identity returns an Echo middleware that reads an optional bearer token
// issued by the identity provider.  A valid token stores the principal in
// the context; a missing or invalid one leaves the request signed out.  The
// middleware never rejects a request.
func Identity(secret string, logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := identity.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return next(c)
			}
			p, err := identity.Parse(secret, raw)
			if err != nil {
				logger.Debug("ignoring identity token", "err", err, "path", c.Path())
				return next(c)
			}
			c.Set(principalKey, &p)
			return next(c)
		}
	}
}
