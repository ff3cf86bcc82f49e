package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mithuan2002/dropenote-sub000/internal/dto"
	"github.com/mithuan2002/dropenote-sub000/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProfileService manages the 1:1 role profiles. Upsert semantics: create-if-absent,
// otherwise the latest write wins. No history is kept.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) GetBrand(userID uuid.UUID) (*models.BrandProfile, error) {
	var profile models.BrandProfile
	if err := s.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load brand profile: %w", err)
	}
	return &profile, nil
}

func (s *ProfileService) UpsertBrand(userID uuid.UUID, req *dto.BrandProfileRequest) (*models.BrandProfile, error) {
	var profile models.BrandProfile
	err := s.db.First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.BrandProfile{ID: uuid.New(), UserID: userID}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load brand profile: %w", err)
	}

	profile.BusinessName = req.BusinessName
	profile.Website = req.Website
	profile.WhatsAppNumber = req.WhatsAppNumber
	if len(req.Links) > 0 {
		profile.Links = datatypes.JSON(req.Links)
	}

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to save brand profile: %w", err)
	}
	return &profile, nil
}

func (s *ProfileService) GetStaff(userID uuid.UUID) (*models.StaffProfile, error) {
	var profile models.StaffProfile
	if err := s.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load staff profile: %w", err)
	}
	return &profile, nil
}

func (s *ProfileService) UpsertStaff(userID uuid.UUID, req *dto.StaffProfileRequest) (*models.StaffProfile, error) {
	var profile models.StaffProfile
	err := s.db.First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.StaffProfile{ID: uuid.New(), UserID: userID}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load staff profile: %w", err)
	}

	profile.StoreName = req.StoreName
	profile.StoreLocation = req.StoreLocation
	profile.Phone = req.Phone

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to save staff profile: %w", err)
	}
	return &profile, nil
}
