package api

import (
	"github.com/gofiber/fiber/v3"

	"fininclusion/internal/inference"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonKindError returns an error response carrying the failure kind.
func jsonKindError(c fiber.Ctx, status int, kind inference.Kind, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"kind":   kind,
		"error":  message,
	})
}
