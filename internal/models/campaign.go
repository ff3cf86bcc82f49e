package models

import (
	"time"

	"github.com/google/uuid"
)

// Campaign is a brand's promotional offer: one public slug, one shared promo code,
// and a pair of checkout URLs (discounted vs full price).
type Campaign struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerUserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_user_id"`
	Name                  string    `gorm:"size:120;not null" json:"name"`
	Slug                  string    `gorm:"size:80;not null;uniqueIndex" json:"slug"`
	PromoCode             string    `gorm:"size:64;not null" json:"promo_code"`
	DiscountPercentage    int       `gorm:"not null" json:"discount_percentage"`
	DiscountedCheckoutURL string    `gorm:"type:text;not null" json:"discounted_checkout_url"`
	NormalCheckoutURL     string    `gorm:"type:text;not null" json:"normal_checkout_url"`
	ExpirationDate        time.Time `gorm:"not null" json:"expiration_date"`
	IsActive              bool      `gorm:"default:true" json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// IsRedeemable reports whether the campaign accepts promo-code submissions at the
// given instant: active and not yet expired.
func (c *Campaign) IsRedeemable(now time.Time) bool {
	return c.IsActive && !c.ExpirationDate.Before(now)
}
