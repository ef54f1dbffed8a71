package middleware

// identity.go resolves the calling user. Authentication is delegated
// entirely to an upstream reverse proxy that injects a trusted header; this
// service never verifies credentials itself. The resolver is modeled as an
// injected capability so nothing below the middleware depends on a specific
// header name.

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// usernameKey is the context key under which the resolved username is stored.
const usernameKey = "username"

// IdentityProvider maps a request context to the caller's username, or ""
// when the request is anonymous.
type IdentityProvider func(c echo.Context) string

// HeaderIdentity builds an IdentityProvider that reads the first non-empty
// value among the given trusted headers, in priority order.
func HeaderIdentity(headers []string) IdentityProvider {
	return func(c echo.Context) string {
		for _, h := range headers {
			if v := strings.TrimSpace(c.Request().Header.Get(h)); v != "" {
				return v
			}
		}
		return ""
	}
}

// Identity stores the resolved username in the Echo context for handlers and
// the rate limiter to read. Anonymous requests pass through with an empty
// username; endpoints that require identity reject those themselves.
func Identity(provider IdentityProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(usernameKey, provider(c))
			return next(c)
		}
	}
}

// Username returns the username resolved by the Identity middleware, or ""
// when the request is anonymous.
func Username(c echo.Context) string {
	if v, ok := c.Get(usernameKey).(string); ok {
		return v
	}
	return ""
}
