package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mithuan2002/dropenote-sub000/internal/dto"
	"github.com/mithuan2002/dropenote-sub000/internal/metrics"
	"github.com/mithuan2002/dropenote-sub000/internal/models"
	"gorm.io/gorm"
)

// RedemptionService is the staff-facing counter flow: verify a presented coupon
// code, then record the purchase against it. Verification is repeatable and
// side-effect free; redemption is one-way.
type RedemptionService struct {
	db *gorm.DB
}

func NewRedemptionService(db *gorm.DB) *RedemptionService {
	return &RedemptionService{db: db}
}

// Verify looks up a coupon by its normalized code. An unknown or already-redeemed
// code yields a negative result with a message, never an error.
func (s *RedemptionService) Verify(code string) (*dto.VerificationResponse, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return &dto.VerificationResponse{Valid: false, Message: "code is required"}, nil
	}

	var coupon models.Coupon
	if err := s.db.First(&coupon, "code = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.VerificationsTotal.WithLabelValues("not_found").Inc()
			return &dto.VerificationResponse{Valid: false, Message: "code not found"}, nil
		}
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}

	var campaign models.Campaign
	if err := s.db.First(&campaign, "id = ?", coupon.CampaignID).Error; err != nil {
		return nil, fmt.Errorf("failed to load campaign for coupon: %w", err)
	}

	view := &dto.CouponView{
		ID:                 coupon.ID,
		Code:               coupon.Code,
		CampaignName:       campaign.Name,
		DiscountPercentage: campaign.DiscountPercentage,
		CustomerName:       coupon.CustomerName,
		Status:             coupon.Status,
		IssuedAt:           coupon.IssuedAt,
	}

	if coupon.Status == models.CouponStatusRedeemed {
		metrics.VerificationsTotal.WithLabelValues("already_redeemed").Inc()
		return &dto.VerificationResponse{Valid: false, Message: "coupon already redeemed", Coupon: view}, nil
	}

	metrics.VerificationsTotal.WithLabelValues("ok").Inc()
	return &dto.VerificationResponse{Valid: true, Message: "coupon is valid", Coupon: view}, nil
}

// Redeem records a purchase against an issued coupon. A coupon can be redeemed at
// most once: the status check catches the common case and the unique index on
// redemptions.coupon_id settles concurrent redeems.
func (s *RedemptionService) Redeem(couponID uuid.UUID, purchaseAmount int64) (*dto.RedemptionResponse, error) {
	if purchaseAmount <= 0 {
		return nil, fmt.Errorf("%w: purchase amount must be a positive integer", ErrValidation)
	}

	var coupon models.Coupon
	if err := s.db.First(&coupon, "id = ?", couponID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load coupon: %w", err)
	}
	if coupon.Status == models.CouponStatusRedeemed {
		return nil, ErrAlreadyRedeemed
	}

	redemption := models.Redemption{
		ID:             uuid.New(),
		CouponID:       coupon.ID,
		PurchaseAmount: purchaseAmount,
		RedeemedAt:     time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&redemption).Error; err != nil {
			return err
		}
		return tx.Model(&models.Coupon{}).Where("id = ?", coupon.ID).
			Update("status", models.CouponStatusRedeemed).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyRedeemed
		}
		return nil, fmt.Errorf("failed to record redemption: %w", err)
	}

	metrics.RedemptionsTotal.Inc()
	metrics.RedemptionAmount.Observe(float64(purchaseAmount))

	return &dto.RedemptionResponse{
		ID:             redemption.ID,
		CouponID:       redemption.CouponID,
		CouponCode:     coupon.Code,
		PurchaseAmount: redemption.PurchaseAmount,
		RedeemedAt:     redemption.RedeemedAt,
	}, nil
}

// ListRecent returns the newest redemptions for staff dashboards.
func (s *RedemptionService) ListRecent(limit int) ([]models.Redemption, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var redemptions []models.Redemption
	if err := s.db.Order("redeemed_at DESC").Limit(limit).Find(&redemptions).Error; err != nil {
		return nil, fmt.Errorf("failed to list redemptions: %w", err)
	}
	return redemptions, nil
}
