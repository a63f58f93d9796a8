package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows browser requests from the configured origins only. Requests
// without an Origin header (curl, mobile apps) pass through untouched.
func CORS(allowedOrigins []string) fiber.Handler {
	cfg := cors.Config{
		AllowOrigins:     strings.Join(allowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
		AllowCredentials: true,
	}
	// fiber refuses credentials with a wildcard origin, which is what an empty list means.
	if len(allowedOrigins) == 0 {
		cfg.AllowOrigins = "*"
		cfg.AllowCredentials = false
	}
	return cors.New(cfg)
}
