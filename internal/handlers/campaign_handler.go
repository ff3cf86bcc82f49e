package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mithuan2002/dropenote-sub000/internal/dto"
	"github.com/mithuan2002/dropenote-sub000/internal/middleware"
	"github.com/mithuan2002/dropenote-sub000/internal/services"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
}

func NewCampaignHandler(campaignService *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

func (h *CampaignHandler) Create(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthenticated",
		})
	}

	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	campaign, err := h.campaignService.Create(identity.UserID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(campaign)
}

func (h *CampaignHandler) List(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthenticated",
		})
	}

	campaigns, err := h.campaignService.ListByOwner(identity.UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(campaigns)
}

// Get returns a campaign by id to any authenticated user; staff need campaign
// context at the counter, so reads are not ownership-scoped.
func (h *CampaignHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid campaign id",
		})
	}

	campaign, err := h.campaignService.GetByID(id)
	if err != nil {
		return respondServiceError(c, err)
	}
	if campaign == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Campaign not found",
		})
	}
	return c.JSON(campaign)
}

func (h *CampaignHandler) Update(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthenticated",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid campaign id",
		})
	}

	var patch dto.UpdateCampaignRequest
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	campaign, err := h.campaignService.Update(id, identity.UserID, &patch)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(campaign)
}

func (h *CampaignHandler) Analytics(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthenticated",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid campaign id",
		})
	}

	analytics, err := h.campaignService.Analytics(id, identity.UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(analytics)
}

func (h *CampaignHandler) Submissions(c *fiber.Ctx) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthenticated",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid campaign id",
		})
	}

	submissions, err := h.campaignService.Submissions(id, identity.UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(submissions)
}
