package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mithuan2002/dropenote-sub000/internal/dto"
	"github.com/mithuan2002/dropenote-sub000/internal/services"
)

// PublicHandler serves the anonymous landing-page endpoints. No session, no
// identity; responses never include owner data.
type PublicHandler struct {
	publicService *services.PublicService
}

func NewPublicHandler(publicService *services.PublicService) *PublicHandler {
	return &PublicHandler{publicService: publicService}
}

func (h *PublicHandler) Resolve(c *fiber.Ctx) error {
	view, err := h.publicService.Resolve(c.Params("slug"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

func (h *PublicHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.publicService.Submit(c.Params("slug"), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}
