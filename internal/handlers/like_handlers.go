package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/panditashushukl/ESamaaj/internal/services"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

type LikeHandler struct {
	svc services.LikeService
}

func NewLikeHandler(svc services.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

// POST /likes/toggle/v/:videoId
func (h *LikeHandler) ToggleVideo(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	liked, err := h.svc.ToggleVideo(c.Context(), caller, c.Params("videoId"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"liked": liked}, "Video like toggled successfully")
}

// POST /likes/toggle/c/:commentId
func (h *LikeHandler) ToggleComment(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	liked, err := h.svc.ToggleComment(c.Context(), caller, c.Params("commentId"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"liked": liked}, "Comment like toggled successfully")
}

// POST /likes/toggle/t/:tweetId
func (h *LikeHandler) ToggleTweet(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	liked, err := h.svc.ToggleTweet(c.Context(), caller, c.Params("tweetId"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"liked": liked}, "Tweet like toggled successfully")
}

// GET /likes/videos
func (h *LikeHandler) LikedVideos(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	videos, err := h.svc.LikedVideos(c.Context(), caller)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, videos, "Liked videos fetched successfully")
}
