package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/panditashushukl/ESamaaj/internal/middleware"
	"github.com/panditashushukl/ESamaaj/internal/models"
	"github.com/panditashushukl/ESamaaj/internal/services"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

type VideoHandler struct {
	svc services.VideoService
}

func NewVideoHandler(svc services.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// GET /videos?query=&username=&page=&limit=&sortBy=&sortType=
func (h *VideoHandler) List(c *fiber.Ctx) error {
	page, limit := pageLimit(c)

	var caller *models.Caller
	if identity, ok := middleware.Caller(c); ok {
		caller = &identity
	}

	result, err := h.svc.List(c.Context(), caller, services.VideoListParams{
		Query:    c.Query("query"),
		Username: c.Query("username"),
		SortBy:   c.Query("sortBy", "createdAt"),
		SortType: c.Query("sortType", "desc"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"currentPage": result.Pagination.CurrentPage,
		"totalPages":  result.Pagination.TotalPages,
		"totalVideos": result.Pagination.TotalCount,
		"videos":      result.Videos,
		"hasNextPage": result.Pagination.HasNextPage,
		"hasPrevPage": result.Pagination.HasPrevPage,
	}, "Videos fetched successfully")
}

// GET /videos/:videoId
func (h *VideoHandler) Get(c *fiber.Ctx) error {
	video, err := h.svc.Get(c.Context(), c.Params("videoId"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, video, "Video fetched successfully")
}

// POST /videos (multipart: videoFile, thumbnail)
func (h *VideoHandler) Publish(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}

	videoFile, err := fileFromForm(c, "videoFile")
	if err != nil {
		return err
	}
	thumbnail, err := fileFromForm(c, "thumbnail")
	if err != nil {
		return err
	}
	if videoFile != nil {
		// optional client-side probe; the store is asked when missing
		videoFile.Duration, _ = strconv.ParseFloat(c.FormValue("duration"), 64)
	}

	video, err := h.svc.Publish(c.Context(), caller, services.PublishInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, video, "Video published successfully")
}

type updateVideoReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PATCH /videos/:videoId
func (h *VideoHandler) Update(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	var req updateVideoReq
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest("invalid body")
	}
	video, err := h.svc.Update(c.Context(), caller, c.Params("videoId"), req.Title, req.Description)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, video, "Video details updated successfully")
}

// DELETE /videos/:videoId
func (h *VideoHandler) Delete(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), caller, c.Params("videoId")); err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, nil, "Video deleted successfully")
}

// PATCH /videos/:videoId/toggle-publish
func (h *VideoHandler) TogglePublish(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	video, err := h.svc.TogglePublish(c.Context(), caller, c.Params("videoId"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, video, "Video publish status updated successfully")
}
