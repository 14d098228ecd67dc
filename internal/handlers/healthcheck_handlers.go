package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/panditashushukl/ESamaaj/internal/utils"
)

// GET /healthcheck
func Healthcheck(c *fiber.Ctx) error {
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"status": "ok"}, "Service is healthy")
}
