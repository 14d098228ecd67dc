package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/panditashushukl/ESamaaj/internal/models"
	"github.com/panditashushukl/ESamaaj/internal/repository"
	"github.com/panditashushukl/ESamaaj/internal/utils"
)

const callerKey = "caller"

// RequireAuth verifies the bearer token and attaches the caller identity;
// requests without a valid token never reach the handler.
func RequireAuth(jwtm *utils.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := callerFromHeader(c, jwtm)
		if err != nil {
			return err
		}
		c.Locals(callerKey, caller)
		return c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is present but lets
// anonymous requests through. List endpoints use it to decide whether the
// requester owns the filtered channel.
func OptionalAuth(jwtm *utils.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if caller, err := callerFromHeader(c, jwtm); err == nil {
			c.Locals(callerKey, caller)
		}
		return c.Next()
	}
}

func callerFromHeader(c *fiber.Ctx, jwtm *utils.JWTManager) (models.Caller, error) {
	auth := c.Get("Authorization")
	if auth == "" {
		return models.Caller{}, utils.Unauthorized("missing authorization")
	}
	token := strings.TrimPrefix(auth, "Bearer ")
	if token == auth {
		return models.Caller{}, utils.Unauthorized("invalid authorization")
	}

	claims, err := jwtm.VerifyAccessToken(token)
	if err != nil {
		return models.Caller{}, utils.Unauthorized("invalid token")
	}
	id, err := repository.ParseObjectID(claims.UserID)
	if err != nil {
		return models.Caller{}, utils.Unauthorized("invalid token")
	}
	return models.Caller{
		ID:       id,
		Username: claims.Username,
		FullName: claims.FullName,
		Avatar:   claims.Avatar,
	}, nil
}

// Caller returns the identity attached by RequireAuth or OptionalAuth.
func Caller(c *fiber.Ctx) (models.Caller, bool) {
	caller, ok := c.Locals(callerKey).(models.Caller)
	return caller, ok
}
