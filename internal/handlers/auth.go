package handlers

import (
	"errors"

	"payflow/internal/middleware"
	"payflow/internal/services/auth"
	"payflow/internal/utils/response"
	"payflow/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler exposes registration and session endpoints.
type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	user, access, refresh, err := h.service.Register(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken),
			errors.Is(err, validation.ErrInvalidEmail),
			errors.Is(err, validation.ErrPasswordTooWeak):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, "registration failed")
		}
	}

	return response.Created(c, "account created", fiber.Map{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	user, access, refresh, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	return response.Success(c, "logged in", fiber.Map{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Refresh handles POST /api/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	access, refresh, err := h.service.RefreshTokens(req.RefreshToken)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	return response.Success(c, "tokens refreshed", fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Logout handles POST /api/logout. Bumping the token version
// invalidates every outstanding token for the caller.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return response.Unauthorized(c)
	}

	if err := h.service.Logout(claims.UserID); err != nil {
		return response.ServerError(c, "logout failed")
	}
	return response.Success(c, "logged out", nil)
}
