package middleware

// identity.go holds the helpers shared across middleware and handlers for
// reading the signed-in principal from the Echo context.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/identity"
)

const principalKey = "principal"

// Principal returns the signed-in principal, or nil when signed out.
func Principal(c echo.Context) *identity.Principal {
	p, _ := c.Get(principalKey).(*identity.Principal)
	return p
}

// userID returns the principal's subject or "guest" when signed out.
func userID(c echo.Context) string {
	if p := Principal(c); p != nil && p.Subject != "" {
		return p.Subject
	}
	return "guest"
}
