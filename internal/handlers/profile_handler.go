package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mithuan2002/dropenote-sub000/internal/dto"
	"github.com/mithuan2002/dropenote-sub000/internal/middleware"
	"github.com/mithuan2002/dropenote-sub000/internal/services"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetBrand(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthenticated",
		})
	}

	profile, err := h.profileService.GetBrand(identity.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Profile not found",
			})
		}
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) UpsertBrand(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthenticated",
		})
	}

	var req dto.BrandProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	profile, err := h.profileService.UpsertBrand(identity.UserID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) GetStaff(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthenticated",
		})
	}

	profile, err := h.profileService.GetStaff(identity.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Profile not found",
			})
		}
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) UpsertStaff(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthenticated",
		})
	}

	var req dto.StaffProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	profile, err := h.profileService.UpsertStaff(identity.UserID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}
