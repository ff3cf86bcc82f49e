package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mithuan2002/dropenote-sub000/internal/dto"
	"github.com/mithuan2002/dropenote-sub000/internal/services"
)

// CouponHandler serves the staff counter flow: verify a presented code, record the
// purchase, list recent redemptions.
type CouponHandler struct {
	redemptionService *services.RedemptionService
}

func NewCouponHandler(redemptionService *services.RedemptionService) *CouponHandler {
	return &CouponHandler{redemptionService: redemptionService}
}

func (h *CouponHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.redemptionService.Verify(req.Code)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

func (h *CouponHandler) Redeem(c *fiber.Ctx) error {
	var req dto.RedeemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	redemption, err := h.redemptionService.Redeem(req.CouponID, req.PurchaseAmount)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(redemption)
}

func (h *CouponHandler) ListRedemptions(c *fiber.Ctx) error {
	redemptions, err := h.redemptionService.ListRecent(c.QueryInt("limit", 50))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(redemptions)
}
