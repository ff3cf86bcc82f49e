package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CouponStatusIssued   = "issued"
	CouponStatusRedeemed = "redeemed"
)

// Coupon is the in-store artifact issued on a valid public submission. Staff verify
// the code at the counter and redeem it against a purchase. Verification never
// mutates the row; redemption is one-way.
type Coupon struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CampaignID   uuid.UUID `gorm:"type:uuid;not null;index" json:"campaign_id"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null" json:"submission_id"`
	Code         string    `gorm:"size:16;not null;uniqueIndex" json:"code"`
	CustomerName string    `gorm:"size:120" json:"customer_name"`
	Status       string    `gorm:"size:20;not null;default:'issued'" json:"status"`
	IssuedAt     time.Time `gorm:"not null" json:"issued_at"`
}

// Redemption records a staff-verified purchase against a coupon. The unique index on
// CouponID enforces the single-redemption policy even under concurrent redeems.
type Redemption struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CouponID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"coupon_id"`
	PurchaseAmount int64     `gorm:"not null" json:"purchase_amount"`
	RedeemedAt     time.Time `gorm:"not null;index" json:"redeemed_at"`
}
