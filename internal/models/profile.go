package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// BrandProfile is 1:1 with a brand user. Upsert semantics: latest write wins.
type BrandProfile struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	BusinessName   string         `gorm:"size:120" json:"business_name"`
	Website        string         `gorm:"size:255" json:"website"`
	WhatsAppNumber string         `gorm:"size:32" json:"whatsapp_number"`
	Links          datatypes.JSON `gorm:"default:'{}'" json:"links"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// StaffProfile is 1:1 with a staff user.
type StaffProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	StoreName     string    `gorm:"size:120" json:"store_name"`
	StoreLocation string    `gorm:"size:255" json:"store_location"`
	Phone         string    `gorm:"size:32" json:"phone"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
