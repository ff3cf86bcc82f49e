package dto

import "time"

type CreateCampaignRequest struct {
	Name                  string    `json:"name"`
	Slug                  string    `json:"slug"`
	PromoCode             string    `json:"promo_code"`
	DiscountPercentage    int       `json:"discount_percentage"`
	DiscountedCheckoutURL string    `json:"discounted_checkout_url"`
	NormalCheckoutURL     string    `json:"normal_checkout_url"`
	ExpirationDate        time.Time `json:"expiration_date"`
}

// UpdateCampaignRequest is a partial update: nil fields are left untouched.
// Slug and owner are immutable after creation.
type UpdateCampaignRequest struct {
	Name                  *string    `json:"name"`
	PromoCode             *string    `json:"promo_code"`
	DiscountPercentage    *int       `json:"discount_percentage"`
	DiscountedCheckoutURL *string    `json:"discounted_checkout_url"`
	NormalCheckoutURL     *string    `json:"normal_checkout_url"`
	ExpirationDate        *time.Time `json:"expiration_date"`
	IsActive              *bool      `json:"is_active"`
}

type CampaignAnalyticsResponse struct {
	TotalSubmissions   int64 `json:"total_submissions"`
	ValidSubmissions   int64 `json:"valid_submissions"`
	InvalidSubmissions int64 `json:"invalid_submissions"`
	SuccessRate        int   `json:"success_rate"`
	TotalRedemptions   int64 `json:"total_redemptions"`
	TotalRevenue       int64 `json:"total_revenue"`
}
