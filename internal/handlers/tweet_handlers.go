package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/panditashushukl/ESamaaj/internal/services"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

type TweetHandler struct {
	svc services.TweetService
}

func NewTweetHandler(svc services.TweetService) *TweetHandler {
	return &TweetHandler{svc: svc}
}

// POST /tweets (multipart: content, contentImages[])
func (h *TweetHandler) Create(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	images, err := filesFromForm(c, "contentImages")
	if err != nil {
		return err
	}
	tweet, err := h.svc.Create(c.Context(), caller, c.FormValue("content"), images)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, tweet, "Tweet created successfully")
}

// GET /tweets/user/:username
func (h *TweetHandler) ListByUser(c *fiber.Ctx) error {
	tweets, err := h.svc.ListByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, tweets, "Tweets fetched successfully")
}

type tweetReq struct {
	Content string `json:"content"`
}

// PATCH /tweets/:tweetId
func (h *TweetHandler) Update(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	var req tweetReq
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest("invalid body")
	}
	tweet, err := h.svc.Update(c.Context(), caller, c.Params("tweetId"), req.Content)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, tweet, "Tweet updated successfully")
}

// DELETE /tweets/:tweetId
func (h *TweetHandler) Delete(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), caller, c.Params("tweetId")); err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, nil, "Tweet deleted successfully")
}
