package handlers

import (
	"errors"
	"log/slog"

	"mangoadmi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error codes surfaced as client errors.
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
)

// ErrorHandler is the single place unexpected handler errors are logged and
// turned into a response.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := classify(err)

		attrs := []any{
			slog.Int("status", status),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		}
		if rid, ok := c.Locals("requestid").(string); ok {
			attrs = append(attrs, slog.String("request_id", rid))
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Warn("request rejected", attrs...)
		}

		body := fiber.Map{"message": message}
		var svcErr *services.Error
		if errors.As(err, &svcErr) && len(svcErr.Details) > 0 {
			body["errors"] = svcErr.Details
		}
		return c.Status(status).JSON(body)
	}
}

func classify(err error) (int, string) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		return svcErr.Status(), svcErr.Message
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fiber.StatusConflict, "Duplicate entry"
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fiber.StatusConflict, "Duplicate entry"
		case pgNotNullViolation:
			return fiber.StatusBadRequest, "Missing required field"
		}
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}
	return fiber.StatusInternalServerError, "Internal server error"
}

// writeError answers service errors directly and hands anything else to ErrorHandler.
func writeError(c *fiber.Ctx, err error) error {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		return err
	}
	body := fiber.Map{"message": svcErr.Message}
	if len(svcErr.Details) > 0 {
		body["errors"] = svcErr.Details
	}
	return c.Status(svcErr.Status()).JSON(body)
}

func invalidBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, services.ValidationError("Invalid id", nil)
	}
	return uint(id), nil
}

// NotFound answers every request no route matched.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": "Route not found",
	})
}
