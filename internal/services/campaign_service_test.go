package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mithuan2002/dropenote-sub000/internal/dto"
	"github.com/mithuan2002/dropenote-sub000/internal/models"
)

func validCampaignRequest() *dto.CreateCampaignRequest {
	return &dto.CreateCampaignRequest{
		Name:                  "Summer",
		Slug:                  "summer",
		PromoCode:             "SUMMER25",
		DiscountPercentage:    25,
		DiscountedCheckoutURL: "https://s.example/checkout?d=SUMMER25",
		NormalCheckoutURL:     "https://s.example/checkout",
		ExpirationDate:        time.Now().Add(30 * 24 * time.Hour),
	}
}

func TestCreateCampaignDefaults(t *testing.T) {
	db := openTestDB(t)
	svc := NewCampaignService(db)
	owner := uuid.New()

	req := validCampaignRequest()
	campaign, err := svc.Create(owner, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !campaign.IsActive {
		t.Fatalf("new campaign must be active")
	}
	if !campaign.ExpirationDate.Equal(req.ExpirationDate) {
		t.Fatalf("expiration date changed: got %v want %v", campaign.ExpirationDate, req.ExpirationDate)
	}
	if campaign.OwnerUserID != owner {
		t.Fatalf("owner not set")
	}
}

func TestCreateCampaignSlugConflict(t *testing.T) {
	db := openTestDB(t)
	svc := NewCampaignService(db)

	if _, err := svc.Create(uuid.New(), validCampaignRequest()); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same slug, every other field different, different owner.
	second := &dto.CreateCampaignRequest{
		Name:                  "Winter",
		Slug:                  "summer",
		PromoCode:             "WINTER50",
		DiscountPercentage:    50,
		DiscountedCheckoutURL: "https://w.example/checkout?d=WINTER50",
		NormalCheckoutURL:     "https://w.example/checkout",
		ExpirationDate:        time.Now().Add(60 * 24 * time.Hour),
	}
	if _, err := svc.Create(uuid.New(), second); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	db := openTestDB(t)
	svc := NewCampaignService(db)
	owner := uuid.New()

	mutations := []struct {
		name   string
		mutate func(*dto.CreateCampaignRequest)
	}{
		{"empty name", func(r *dto.CreateCampaignRequest) { r.Name = "  " }},
		{"uppercase slug", func(r *dto.CreateCampaignRequest) { r.Slug = "Summer" }},
		{"slug with spaces", func(r *dto.CreateCampaignRequest) { r.Slug = "summer sale" }},
		{"slug trailing hyphen", func(r *dto.CreateCampaignRequest) { r.Slug = "summer-" }},
		{"empty promo code", func(r *dto.CreateCampaignRequest) { r.PromoCode = "" }},
		{"zero percentage", func(r *dto.CreateCampaignRequest) { r.DiscountPercentage = 0 }},
		{"percentage above 100", func(r *dto.CreateCampaignRequest) { r.DiscountPercentage = 101 }},
		{"relative discounted URL", func(r *dto.CreateCampaignRequest) { r.DiscountedCheckoutURL = "/checkout" }},
		{"bad scheme normal URL", func(r *dto.CreateCampaignRequest) { r.NormalCheckoutURL = "ftp://s.example/x" }},
		{"missing expiration", func(r *dto.CreateCampaignRequest) { r.ExpirationDate = time.Time{} }},
	}
	for _, tc := range mutations {
		req := validCampaignRequest()
		req.Slug = "v-" + req.Slug // avoid slug conflicts across cases
		tc.mutate(req)
		if _, err := svc.Create(owner, req); !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestGetReturnsNilWhenAbsent(t *testing.T) {
	db := openTestDB(t)
	svc := NewCampaignService(db)

	campaign, err := svc.GetByID(uuid.New())
	if err != nil || campaign != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", campaign, err)
	}
	campaign, err = svc.GetBySlug("nope")
	if err != nil || campaign != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", campaign, err)
	}
}

func TestUpdateOwnershipAndPatch(t *testing.T) {
	db := openTestDB(t)
	svc := NewCampaignService(db)
	owner := uuid.New()
	stranger := uuid.New()

	campaign, err := svc.Create(owner, validCampaignRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	inactive := false
	if _, err := svc.Update(campaign.ID, stranger, &dto.UpdateCampaignRequest{IsActive: &inactive}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if _, err := svc.Update(uuid.New(), owner, &dto.UpdateCampaignRequest{IsActive: &inactive}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	updated, err := svc.Update(campaign.ID, owner, &dto.UpdateCampaignRequest{IsActive: &inactive})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.IsActive {
		t.Fatalf("isActive not toggled")
	}
	if updated.Slug != campaign.Slug || updated.OwnerUserID != owner {
		t.Fatalf("slug/owner must be immutable")
	}

	badPct := 500
	if _, err := svc.Update(campaign.ID, owner, &dto.UpdateCampaignRequest{DiscountPercentage: &badPct}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation on patched percentage, got %v", err)
	}
}

func TestAnalyticsInvariant(t *testing.T) {
	db := openTestDB(t)
	svc := NewCampaignService(db)
	owner := uuid.New()

	campaign, err := svc.Create(owner, validCampaignRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Empty campaign: all zeros, no division by zero.
	analytics, err := svc.Analytics(campaign.ID, owner)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if analytics.TotalSubmissions != 0 || analytics.SuccessRate != 0 {
		t.Fatalf("expected zeroed analytics, got %+v", analytics)
	}

	for i, valid := range []bool{true, true, false} {
		sub := models.CustomerSubmission{
			ID:               uuid.New(),
			CampaignID:       campaign.ID,
			CustomerName:     "c",
			CustomerWhatsApp: "+1555",
			PromoCodeEntered: "x",
			WasValid:         valid,
			SubmittedAt:      time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := db.Create(&sub).Error; err != nil {
			t.Fatalf("seed submission: %v", err)
		}
	}

	analytics, err = svc.Analytics(campaign.ID, owner)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if analytics.ValidSubmissions+analytics.InvalidSubmissions != analytics.TotalSubmissions {
		t.Fatalf("count invariant broken: %+v", analytics)
	}
	if analytics.TotalSubmissions != 3 || analytics.ValidSubmissions != 2 {
		t.Fatalf("unexpected counts: %+v", analytics)
	}
	if analytics.SuccessRate != 67 { // round(100 * 2/3)
		t.Fatalf("expected success rate 67, got %d", analytics.SuccessRate)
	}

	if _, err := svc.Analytics(campaign.ID, uuid.New()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("analytics must be owner-only, got %v", err)
	}
}

func TestAnalyticsIncludesRedemptionRevenue(t *testing.T) {
	db := openTestDB(t)
	svc := NewCampaignService(db)
	owner := uuid.New()

	campaign, err := svc.Create(owner, validCampaignRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	coupon := models.Coupon{
		ID:           uuid.New(),
		CampaignID:   campaign.ID,
		SubmissionID: uuid.New(),
		Code:         "TESTCODE42",
		Status:       models.CouponStatusRedeemed,
		IssuedAt:     time.Now(),
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("seed coupon: %v", err)
	}
	redemption := models.Redemption{
		ID:             uuid.New(),
		CouponID:       coupon.ID,
		PurchaseAmount: 500,
		RedeemedAt:     time.Now(),
	}
	if err := db.Create(&redemption).Error; err != nil {
		t.Fatalf("seed redemption: %v", err)
	}

	analytics, err := svc.Analytics(campaign.ID, owner)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if analytics.TotalRedemptions != 1 || analytics.TotalRevenue != 500 {
		t.Fatalf("expected 1 redemption / 500 revenue, got %+v", analytics)
	}
}

func TestSubmissionsOwnerOnlyNewestFirst(t *testing.T) {
	db := openTestDB(t)
	svc := NewCampaignService(db)
	owner := uuid.New()

	campaign, err := svc.Create(owner, validCampaignRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	base := time.Now()
	for i := 0; i < 3; i++ {
		sub := models.CustomerSubmission{
			ID:               uuid.New(),
			CampaignID:       campaign.ID,
			CustomerName:     "c",
			CustomerWhatsApp: "+1555",
			PromoCodeEntered: "x",
			SubmittedAt:      base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&sub).Error; err != nil {
			t.Fatalf("seed submission: %v", err)
		}
	}

	subs, err := svc.Submissions(campaign.ID, owner)
	if err != nil {
		t.Fatalf("submissions: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("expected 3 submissions, got %d", len(subs))
	}
	if subs[0].SubmittedAt.Before(subs[1].SubmittedAt) {
		t.Fatalf("expected newest first")
	}

	if _, err := svc.Submissions(campaign.ID, uuid.New()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("submissions must be owner-only, got %v", err)
	}
}

func TestIsRedeemable(t *testing.T) {
	now := time.Now()
	campaign := &models.Campaign{IsActive: true, ExpirationDate: now.Add(time.Hour)}
	if !campaign.IsRedeemable(now) {
		t.Fatalf("active unexpired campaign must be redeemable")
	}
	campaign.IsActive = false
	if campaign.IsRedeemable(now) {
		t.Fatalf("inactive campaign must not be redeemable")
	}
	campaign.IsActive = true
	campaign.ExpirationDate = now.Add(-time.Hour)
	if campaign.IsRedeemable(now) {
		t.Fatalf("expired campaign must not be redeemable")
	}
}
