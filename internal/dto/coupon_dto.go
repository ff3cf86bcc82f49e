package dto

import (
	"time"

	"github.com/google/uuid"
)

type VerifyRequest struct {
	Code string `json:"code"`
}

type CouponView struct {
	ID                 uuid.UUID `json:"id"`
	Code               string    `json:"code"`
	CampaignName       string    `json:"campaign_name"`
	DiscountPercentage int       `json:"discount_percentage"`
	CustomerName       string    `json:"customer_name"`
	Status             string    `json:"status"`
	IssuedAt           time.Time `json:"issued_at"`
}

type VerificationResponse struct {
	Valid   bool        `json:"valid"`
	Message string      `json:"message"`
	Coupon  *CouponView `json:"coupon,omitempty"`
}

type RedeemRequest struct {
	CouponID       uuid.UUID `json:"coupon_id"`
	PurchaseAmount int64     `json:"purchase_amount"`
}

type RedemptionResponse struct {
	ID             uuid.UUID `json:"id"`
	CouponID       uuid.UUID `json:"coupon_id"`
	CouponCode     string    `json:"coupon_code"`
	PurchaseAmount int64     `json:"purchase_amount"`
	RedeemedAt     time.Time `json:"redeemed_at"`
}
