package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/mithuan2002/dropenote-sub000/internal/dto"
	"github.com/mithuan2002/dropenote-sub000/internal/services"
)

// respondServiceError maps the business error taxonomy to HTTP statuses. Anything
// outside the taxonomy is logged and masked as a 500.
func respondServiceError(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrSlugTaken):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrUnauthenticated):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrAlreadyRedeemed):
		status = fiber.StatusConflict
	default:
		slog.Error("unhandled service error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}
