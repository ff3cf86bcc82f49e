package services

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mithuan2002/dropenote-sub000/internal/dto"
	"github.com/mithuan2002/dropenote-sub000/internal/metrics"
	"github.com/mithuan2002/dropenote-sub000/internal/models"
	"gorm.io/gorm"
)

// couponCharset avoids characters easily confused when a coupon is read out at the
// counter (no 0/O, 1/I).
const couponCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const couponCodeLen = 10

// PublicService backs the anonymous landing-page flow: resolving a campaign by slug
// and handling promo-code submissions. It must never expose owner identity.
type PublicService struct {
	db        *gorm.DB
	campaigns *CampaignService
}

func NewPublicService(db *gorm.DB, campaigns *CampaignService) *PublicService {
	return &PublicService{db: db, campaigns: campaigns}
}

// Resolve maps a slug to the public campaign projection.
func (s *PublicService) Resolve(slug string) (*dto.PublicCampaignResponse, error) {
	campaign, err := s.campaigns.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrNotFound
	}

	return &dto.PublicCampaignResponse{
		Name:               campaign.Name,
		Slug:               campaign.Slug,
		DiscountPercentage: campaign.DiscountPercentage,
		ExpirationDate:     campaign.ExpirationDate,
		IsActive:           campaign.IsActive,
	}, nil
}

// Submit handles one anonymous promo-code attempt. Once the campaign is redeemable
// and the inputs parse, a CustomerSubmission row is appended whether or not the code
// matched: the audit trail records failures too. A matching code issues a coupon and
// routes the customer to the pre-discounted checkout; anything else routes to the
// full-price checkout.
func (s *PublicService) Submit(slug string, req *dto.SubmitRequest) (*dto.SubmissionResultResponse, error) {
	campaign, err := s.campaigns.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	if !campaign.IsRedeemable(now) {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		message := "this campaign is no longer active"
		if campaign.ExpirationDate.Before(now) {
			message = "this campaign has expired"
		}
		return &dto.SubmissionResultResponse{Valid: false, Message: message}, nil
	}

	name := strings.TrimSpace(req.CustomerName)
	whatsApp := strings.TrimSpace(req.CustomerWhatsApp)
	code := strings.TrimSpace(req.PromoCode)
	if name == "" || whatsApp == "" || code == "" {
		return nil, fmt.Errorf("%w: name, WhatsApp number and promo code are required", ErrValidation)
	}

	// Codes are typed on mobile keyboards; the match is case-insensitive.
	valid := strings.EqualFold(code, strings.TrimSpace(campaign.PromoCode))

	submission := models.CustomerSubmission{
		ID:               uuid.New(),
		CampaignID:       campaign.ID,
		CustomerName:     name,
		CustomerWhatsApp: whatsApp,
		PromoCodeEntered: req.PromoCode,
		WasValid:         valid,
		SubmittedAt:      now,
	}
	if err := s.db.Create(&submission).Error; err != nil {
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	if !valid {
		metrics.SubmissionsTotal.WithLabelValues("invalid").Inc()
		return &dto.SubmissionResultResponse{
			Valid:              false,
			Message:            "invalid promo code",
			CheckoutURL:        campaign.NormalCheckoutURL,
			DiscountPercentage: 0,
		}, nil
	}

	coupon, err := s.issueCoupon(campaign, &submission)
	if err != nil {
		return nil, err
	}

	metrics.SubmissionsTotal.WithLabelValues("valid").Inc()
	return &dto.SubmissionResultResponse{
		Valid:              true,
		Message:            "promo code accepted",
		CheckoutURL:        campaign.DiscountedCheckoutURL,
		DiscountPercentage: campaign.DiscountPercentage,
		CouponCode:         coupon.Code,
	}, nil
}

func (s *PublicService) issueCoupon(campaign *models.Campaign, submission *models.CustomerSubmission) (*models.Coupon, error) {
	// Retry on the (unlikely) code collision; the unique index decides.
	for attempt := 0; attempt < 3; attempt++ {
		code, err := generateCouponCode()
		if err != nil {
			return nil, err
		}

		coupon := models.Coupon{
			ID:           uuid.New(),
			CampaignID:   campaign.ID,
			SubmissionID: submission.ID,
			Code:         code,
			CustomerName: submission.CustomerName,
			Status:       models.CouponStatusIssued,
			IssuedAt:     time.Now(),
		}
		if err := s.db.Create(&coupon).Error; err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return nil, fmt.Errorf("failed to issue coupon: %w", err)
		}

		metrics.CouponsIssuedTotal.Inc()
		return &coupon, nil
	}
	return nil, fmt.Errorf("failed to issue coupon: code space exhausted after retries")
}

func generateCouponCode() (string, error) {
	buf := make([]byte, couponCodeLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate coupon code: %w", err)
	}
	for i, b := range buf {
		buf[i] = couponCharset[int(b)%len(couponCharset)]
	}
	return string(buf), nil
}
