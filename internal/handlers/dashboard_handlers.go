package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/panditashushukl/ESamaaj/internal/services"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

type DashboardHandler struct {
	svc services.DashboardService
}

func NewDashboardHandler(svc services.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GET /dashboard/:channelUsername/stats
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context(), c.Params("channelUsername"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, stats, "Channel stats fetched successfully")
}

// GET /dashboard/:channelUsername/videos
func (h *DashboardHandler) Videos(c *fiber.Ctx) error {
	videos, err := h.svc.Videos(c.Context(), c.Params("channelUsername"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, videos, "Videos fetched successfully")
}
