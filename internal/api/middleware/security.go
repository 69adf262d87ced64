package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeaders sets baseline security headers on every response.
// Cache-Control is owned per-route by the handlers.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			// Prevent MIME type sniffing
			h.Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			h.Set("X-Frame-Options", "SAMEORIGIN")

			// Control referrer information
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

			h.Set("Content-Security-Policy", "frame-ancestors 'self'")

			return next(c)
		}
	}
}
