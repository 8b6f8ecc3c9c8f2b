package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/database"
	"github.com/sahilchouksey/online-lms/utils/response"
)

// HandleCheckHealth reports whether the database answers
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return response.ServiceUnavailable(c, "Database unavailable")
	}
	return response.Success(c, fiber.Map{"status": "ok", "database": "up"})
}
