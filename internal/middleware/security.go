package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// SecurityHeaders adds security headers to responses. Stored images have
// random immutable names and may be cached; API responses may not.
func SecurityHeaders(uploadsPrefix string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Content-Security-Policy", "default-src 'self'")

			if uploadsPrefix != "" && strings.HasPrefix(c.Request().URL.Path, uploadsPrefix) {
				h.Set("Cache-Control", "public, max-age=86400, immutable")
			} else {
				h.Set("Cache-Control", "no-store")
			}

			return next(c)
		}
	}
}
