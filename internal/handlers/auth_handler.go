package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mithuan2002/dropenote-sub000/internal/config"
	"github.com/mithuan2002/dropenote-sub000/internal/dto"
	"github.com/mithuan2002/dropenote-sub000/internal/middleware"
	"github.com/mithuan2002/dropenote-sub000/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.authService.Register(req.Username, req.Password, req.Role)
	if err != nil {
		return respondServiceError(c, err)
	}

	h.setSessionCookie(c, result.SessionToken)
	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		AccessToken: result.AccessToken,
		User: dto.UserResponse{
			ID:       result.User.ID,
			Username: result.User.Username,
			Role:     result.User.Role,
		},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	h.setSessionCookie(c, result.SessionToken)
	return c.JSON(dto.AuthResponse{
		AccessToken: result.AccessToken,
		User: dto.UserResponse{
			ID:       result.User.ID,
			Username: result.User.Username,
			Role:     result.User.Role,
		},
	})
}

// Logout revokes the session the request authenticated with, whether it arrived
// via cookie or bearer token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthenticated",
		})
	}

	if err := h.authService.RevokeSession(identity.SessionID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to logout",
		})
	}

	h.clearSessionCookie(c)
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthenticated",
		})
	}

	return c.JSON(dto.UserResponse{
		ID:       identity.UserID,
		Username: identity.Username,
		Role:     identity.Role,
	})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.Auth.CookieName,
		Value:    token,
		Expires:  time.Now().Add(h.cfg.Auth.SessionTTL),
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.Auth.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
