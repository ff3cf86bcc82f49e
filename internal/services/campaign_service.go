package services

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/mithuan2002/dropenote-sub000/internal/dto"
	"github.com/mithuan2002/dropenote-sub000/internal/models"
	"gorm.io/gorm"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type CampaignService struct {
	db *gorm.DB
}

func NewCampaignService(db *gorm.DB) *CampaignService {
	return &CampaignService{db: db}
}

// Create validates and persists a new campaign owned by ownerID. The slug unique
// index backstops the pre-check, so two concurrent creations with the same slug
// cannot both succeed.
func (s *CampaignService) Create(ownerID uuid.UUID, req *dto.CreateCampaignRequest) (*models.Campaign, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !slugRe.MatchString(req.Slug) {
		return nil, fmt.Errorf("%w: slug must be lowercase letters, digits and hyphens", ErrValidation)
	}
	if strings.TrimSpace(req.PromoCode) == "" {
		return nil, fmt.Errorf("%w: promo code is required", ErrValidation)
	}
	if req.DiscountPercentage < 1 || req.DiscountPercentage > 100 {
		return nil, fmt.Errorf("%w: discount percentage must be between 1 and 100", ErrValidation)
	}
	if err := validateCheckoutURL(req.DiscountedCheckoutURL); err != nil {
		return nil, fmt.Errorf("%w: discounted checkout URL %v", ErrValidation, err)
	}
	if err := validateCheckoutURL(req.NormalCheckoutURL); err != nil {
		return nil, fmt.Errorf("%w: normal checkout URL %v", ErrValidation, err)
	}
	if req.ExpirationDate.IsZero() {
		return nil, fmt.Errorf("%w: expiration date is required", ErrValidation)
	}

	var existing models.Campaign
	if err := s.db.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		return nil, ErrSlugTaken
	}

	campaign := models.Campaign{
		ID:                    uuid.New(),
		OwnerUserID:           ownerID,
		Name:                  strings.TrimSpace(req.Name),
		Slug:                  req.Slug,
		PromoCode:             strings.TrimSpace(req.PromoCode),
		DiscountPercentage:    req.DiscountPercentage,
		DiscountedCheckoutURL: req.DiscountedCheckoutURL,
		NormalCheckoutURL:     req.NormalCheckoutURL,
		ExpirationDate:        req.ExpirationDate,
		IsActive:              true,
	}

	if err := s.db.Create(&campaign).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return &campaign, nil
}

// GetByID returns (nil, nil) when the id is unknown; callers decide whether absence
// is fatal.
func (s *CampaignService) GetByID(id uuid.UUID) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := s.db.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	return &campaign, nil
}

// GetBySlug returns (nil, nil) when no campaign matches the slug exactly.
func (s *CampaignService) GetBySlug(slug string) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := s.db.First(&campaign, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	return &campaign, nil
}

func (s *CampaignService) ListByOwner(ownerID uuid.UUID) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := s.db.Where("owner_user_id = ?", ownerID).Order("created_at DESC").Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// Update applies a partial update. Only the owner may mutate a campaign; slug and
// owner are immutable.
func (s *CampaignService) Update(id uuid.UUID, requesterID uuid.UUID, patch *dto.UpdateCampaignRequest) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := s.db.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign.OwnerUserID != requesterID {
		return nil, ErrForbidden
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		campaign.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.PromoCode != nil {
		if strings.TrimSpace(*patch.PromoCode) == "" {
			return nil, fmt.Errorf("%w: promo code cannot be empty", ErrValidation)
		}
		campaign.PromoCode = strings.TrimSpace(*patch.PromoCode)
	}
	if patch.DiscountPercentage != nil {
		if *patch.DiscountPercentage < 1 || *patch.DiscountPercentage > 100 {
			return nil, fmt.Errorf("%w: discount percentage must be between 1 and 100", ErrValidation)
		}
		campaign.DiscountPercentage = *patch.DiscountPercentage
	}
	if patch.DiscountedCheckoutURL != nil {
		if err := validateCheckoutURL(*patch.DiscountedCheckoutURL); err != nil {
			return nil, fmt.Errorf("%w: discounted checkout URL %v", ErrValidation, err)
		}
		campaign.DiscountedCheckoutURL = *patch.DiscountedCheckoutURL
	}
	if patch.NormalCheckoutURL != nil {
		if err := validateCheckoutURL(*patch.NormalCheckoutURL); err != nil {
			return nil, fmt.Errorf("%w: normal checkout URL %v", ErrValidation, err)
		}
		campaign.NormalCheckoutURL = *patch.NormalCheckoutURL
	}
	if patch.ExpirationDate != nil {
		if patch.ExpirationDate.IsZero() {
			return nil, fmt.Errorf("%w: expiration date cannot be empty", ErrValidation)
		}
		campaign.ExpirationDate = *patch.ExpirationDate
	}
	if patch.IsActive != nil {
		campaign.IsActive = *patch.IsActive
	}

	if err := s.db.Save(&campaign).Error; err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}
	return &campaign, nil
}

// Analytics aggregates submission and redemption counts for the owner.
func (s *CampaignService) Analytics(id uuid.UUID, requesterID uuid.UUID) (*dto.CampaignAnalyticsResponse, error) {
	campaign, err := s.requireOwned(id, requesterID)
	if err != nil {
		return nil, err
	}

	var total, valid int64
	if err := s.db.Model(&models.CustomerSubmission{}).Where("campaign_id = ?", campaign.ID).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}
	if err := s.db.Model(&models.CustomerSubmission{}).Where("campaign_id = ? AND was_valid = ?", campaign.ID, true).Count(&valid).Error; err != nil {
		return nil, fmt.Errorf("failed to count valid submissions: %w", err)
	}

	successRate := 0
	if total > 0 {
		successRate = int(math.Round(100 * float64(valid) / float64(total)))
	}

	var redemptions int64
	var revenue int64
	if err := s.db.Model(&models.Redemption{}).
		Joins("JOIN coupons ON coupons.id = redemptions.coupon_id").
		Where("coupons.campaign_id = ?", campaign.ID).
		Count(&redemptions).Error; err != nil {
		return nil, fmt.Errorf("failed to count redemptions: %w", err)
	}
	if err := s.db.Model(&models.Redemption{}).
		Joins("JOIN coupons ON coupons.id = redemptions.coupon_id").
		Where("coupons.campaign_id = ?", campaign.ID).
		Select("COALESCE(SUM(redemptions.purchase_amount), 0)").
		Scan(&revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return &dto.CampaignAnalyticsResponse{
		TotalSubmissions:   total,
		ValidSubmissions:   valid,
		InvalidSubmissions: total - valid,
		SuccessRate:        successRate,
		TotalRedemptions:   redemptions,
		TotalRevenue:       revenue,
	}, nil
}

// Submissions returns the raw audit trail for the owner, newest first.
func (s *CampaignService) Submissions(id uuid.UUID, requesterID uuid.UUID) ([]models.CustomerSubmission, error) {
	campaign, err := s.requireOwned(id, requesterID)
	if err != nil {
		return nil, err
	}

	var submissions []models.CustomerSubmission
	if err := s.db.Where("campaign_id = ?", campaign.ID).Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

func (s *CampaignService) requireOwned(id uuid.UUID, requesterID uuid.UUID) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := s.db.First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign.OwnerUserID != requesterID {
		return nil, ErrForbidden
	}
	return &campaign, nil
}

func validateCheckoutURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an absolute http(s) URL")
	}
	return nil
}
