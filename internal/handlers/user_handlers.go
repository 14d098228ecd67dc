package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/panditashushukl/ESamaaj/internal/services"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

type UserHandler struct {
	svc services.AuthService
}

func NewUserHandler(svc services.AuthService) *UserHandler {
	return &UserHandler{svc: svc}
}

// POST /users/register (multipart: avatar, coverImage optional)
func (h *UserHandler) Register(c *fiber.Ctx) error {
	avatar, err := fileFromForm(c, "avatar")
	if err != nil {
		return err
	}
	coverImage, err := fileFromForm(c, "coverImage")
	if err != nil {
		return err
	}

	user, err := h.svc.Register(c.Context(), services.RegisterInput{
		Username:   c.FormValue("username"),
		Email:      c.FormValue("email"),
		Password:   c.FormValue("password"),
		FullName:   c.FormValue("fullName"),
		Avatar:     avatar,
		CoverImage: coverImage,
	})
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, user, "User registered successfully")
}

type loginReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /users/login
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest("invalid body")
	}
	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	result, err := h.svc.Login(c.Context(), identifier, req.Password)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, result, "User logged in successfully")
}

// POST /users/logout
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := h.svc.Logout(c.Context(), caller); err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, nil, "User logged out successfully")
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

// POST /users/refresh-token
func (h *UserHandler) Refresh(c *fiber.Ctx) error {
	var req refreshReq
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest("invalid body")
	}
	if req.RefreshToken == "" {
		return utils.BadRequest("refresh token is required")
	}
	tokens, err := h.svc.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, tokens, "Access token refreshed successfully")
}

// GET /users/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	user, err := h.svc.Profile(c.Context(), caller)
	if err != nil {
		return err
	}
	return utils.JSONSuccess(c, fiber.StatusOK, user, "Current user fetched successfully")
}
