package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SessionHeader carries the opaque anonymous session id.
const SessionHeader = "x-session-id"

// RequireSession extracts the session id for favorites routes. The id
// is an opaque client-held string, not an authenticated identity.
// Missing header is a client error.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := c.Request().Header.Get(SessionHeader)
			if sessionID == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "Session ID required")
			}
			c.Set("sessionID", sessionID)
			return next(c)
		}
	}
}

func GetSessionID(c echo.Context) string {
	if id, ok := c.Get("sessionID").(string); ok {
		return id
	}
	return ""
}
