package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping() error
}

// poolStats is implemented by database handles that expose pool usage.
type poolStats interface {
	Stats() (open, inUse int, waitDuration time.Duration)
}

// HealthHandler reports liveness. It always answers 200; database state is informational.
type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	database := "up"
	if h.db == nil || h.db.Ping() != nil {
		database = "down"
	}
	body := fiber.Map{
		"message":  "Server is running",
		"database": database,
		"time":     time.Now().Format(time.RFC3339),
	}
	if ps, ok := h.db.(poolStats); ok && database == "up" {
		open, inUse, wait := ps.Stats()
		body["pool"] = fiber.Map{
			"open":   open,
			"inUse":  inUse,
			"waitMs": wait.Milliseconds(),
		}
	}
	return c.Status(fiber.StatusOK).JSON(body)
}
