package server

import (
	"log/slog"

	"mangoadmi/internal/handlers"
	"mangoadmi/internal/middleware"
	"mangoadmi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Dependencies are the process-scoped collaborators the HTTP surface needs.
type Dependencies struct {
	UserService    *services.UserService
	ContactService *services.ContactService
	Database       handlers.Pinger
	Logger         *slog.Logger
	AllowedOrigins []string
	// RequestLogging enables the per-request access log.
	RequestLogging bool
}

// New assembles the Fiber app: middleware, API routes under /api, and the
// catch-all 404.
func New(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "mangoadmi",
		ErrorHandler:          handlers.ErrorHandler(deps.Logger),
		DisableStartupMessage: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	if deps.RequestLogging {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(middleware.CORS(deps.AllowedOrigins))

	// --- API Routes ---
	api := app.Group("/api")
	handlers.NewUserHandler(deps.UserService).RegisterRoutes(api)
	handlers.NewContactHandler(deps.ContactService).RegisterRoutes(api)
	handlers.NewHealthHandler(deps.Database).RegisterRoutes(api)

	app.Use(handlers.NotFound)

	return app
}
