package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/panditashushukl/ESamaaj/internal/services"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

type PlaylistHandler struct {
	svc services.PlaylistService
}

func NewPlaylistHandler(svc services.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{svc: svc}
}

type playlistReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// POST /playlists
func (h *PlaylistHandler) Create(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	var req playlistReq
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest("invalid body")
	}
	playlist, err := h.svc.Create(c.Context(), caller, req.Name, req.Description)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, playlist, "Playlist created successfully")
}

// GET /playlists/user/:username
func (h *PlaylistHandler) ListByUser(c *fiber.Ctx) error {
	playlists, err := h.svc.ListByUsername(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, playlists, "Playlists fetched successfully")
}

// GET /playlists/:playlistId
func (h *PlaylistHandler) Get(c *fiber.Ctx) error {
	detail, err := h.svc.Get(c.Context(), c.Params("playlistId"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, detail, "Playlist fetched successfully")
}

// PATCH /playlists/:playlistId
func (h *PlaylistHandler) Update(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	var req playlistReq
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest("invalid body")
	}
	playlist, err := h.svc.Update(c.Context(), caller, c.Params("playlistId"), req.Name, req.Description)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, playlist, "Playlist updated successfully")
}

// DELETE /playlists/:playlistId
func (h *PlaylistHandler) Delete(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Context(), caller, c.Params("playlistId")); err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, nil, "Playlist deleted successfully")
}

// PATCH /playlists/:playlistId/videos/:videoId
func (h *PlaylistHandler) AddVideo(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	playlist, err := h.svc.AddVideo(c.Context(), caller, c.Params("playlistId"), c.Params("videoId"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, playlist, "Video added to playlist successfully")
}

// DELETE /playlists/:playlistId/videos/:videoId
func (h *PlaylistHandler) RemoveVideo(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	playlist, err := h.svc.RemoveVideo(c.Context(), caller, c.Params("playlistId"), c.Params("videoId"))
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, playlist, "Video removed from playlist successfully")
}
