package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/panditashushukl/ESamaaj/internal/services"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

type SubscriptionHandler struct {
	svc services.SubscriptionService
}

func NewSubscriptionHandler(svc services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// POST /subscriptions/channels/:channelUsername/subscribers
func (h *SubscriptionHandler) Toggle(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	result, err := h.svc.Toggle(c.Context(), caller, c.Params("channelUsername"))
	if err != nil {
		return err
	}
	message := "Channel unsubscribed successfully"
	if result.Subscribed {
		message = "Channel subscribed successfully"
	}
	return utils.JSONSuccess(c, fiber.StatusOK, result, message)
}

// GET /subscriptions/channels/:channelUsername/subscribers
func (h *SubscriptionHandler) Subscribers(c *fiber.Ctx) error {
	entries, err := h.svc.Subscribers(c.Context(), c.Params("channelUsername"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, entries, "Subscribers fetched successfully")
}

// GET /subscriptions/users/:username/subscriptions
func (h *SubscriptionHandler) Subscriptions(c *fiber.Ctx) error {
	entries, err := h.svc.Subscriptions(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, entries, "Channels fetched successfully")
}
