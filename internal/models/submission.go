package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerSubmission is one public promo-code attempt against a campaign. Rows are
// append-only: every attempt is recorded, valid or not, and never mutated.
type CustomerSubmission struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CampaignID       uuid.UUID `gorm:"type:uuid;not null;index" json:"campaign_id"`
	CustomerName     string    `gorm:"size:120;not null" json:"customer_name"`
	CustomerWhatsApp string    `gorm:"size:32;not null" json:"customer_whatsapp"`
	PromoCodeEntered string    `gorm:"size:64;not null" json:"promo_code_entered"`
	WasValid         bool      `gorm:"not null" json:"was_valid"`
	SubmittedAt      time.Time `gorm:"not null;index" json:"submitted_at"`
}
