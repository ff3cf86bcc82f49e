package models

import (
	"time"

	"github.com/google/uuid"
)

// Role names are fixed at registration and never change afterwards.
const (
	RoleBrand = "brand"
	RoleStaff = "staff"
)

// User is an authenticated account: either a brand (campaign owner) or store staff.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"size:20;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
