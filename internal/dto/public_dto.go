package dto

import "time"

// PublicCampaignResponse is the anonymous-facing campaign projection. It carries no
// owner identity and no promo code.
type PublicCampaignResponse struct {
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	DiscountPercentage int       `json:"discount_percentage"`
	ExpirationDate     time.Time `json:"expiration_date"`
	IsActive           bool      `json:"is_active"`
}

type SubmitRequest struct {
	PromoCode        string `json:"promo_code"`
	CustomerName     string `json:"customer_name"`
	CustomerWhatsApp string `json:"customer_whatsapp"`
}

type SubmissionResultResponse struct {
	Valid              bool   `json:"valid"`
	Message            string `json:"message"`
	CheckoutURL        string `json:"checkout_url,omitempty"`
	DiscountPercentage int    `json:"discount_percentage"`
	CouponCode         string `json:"coupon_code,omitempty"`
}
