package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/panditashushukl/ESamaaj/internal/services"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

type CommentHandler struct {
	svc services.CommentService
}

func NewCommentHandler(svc services.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// GET /comments/:videoId?page=&limit=
func (h *CommentHandler) List(c *fiber.Ctx) error {
	page, limit := pageLimit(c)
	result, err := h.svc.List(c.Context(), c.Params("videoId"), page, limit)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"comments":   result.Comments,
		"pagination": result.Pagination,
	}, "Comments fetched successfully")
}

type commentReq struct {
	Content string `json:"content"`
}

// POST /comments/:videoId
func (h *CommentHandler) Add(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	var req commentReq
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest("invalid body")
	}
	comment, err := h.svc.Add(c.Context(), caller, c.Params("videoId"), req.Content)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, comment, "Comment added successfully")
}

// PATCH /comments/c/:commentId
func (h *CommentHandler) Update(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	var req commentReq
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest("invalid body")
	}
	comment, err := h.svc.Update(c.Context(), caller, c.Params("commentId"), req.Content)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, comment, "Comment updated successfully")
}

// DELETE /comments/c/:commentId
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), caller, c.Params("commentId")); err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, nil, "Comment deleted successfully")
}
