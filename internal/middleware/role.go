package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mithuan2002/dropenote-sub000/internal/dto"
)

// RoleRequired rejects authenticated callers whose role does not match. Must be
// mounted after SessionProtected: authentication is checked before role, role before
// ownership.
func RoleRequired(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthenticated",
			})
		}
		if identity.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Forbidden: " + role + " role required",
			})
		}
		return c.Next()
	}
}
