package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mithuan2002/dropenote-sub000/internal/dto"
	"github.com/mithuan2002/dropenote-sub000/internal/models"
	"gorm.io/gorm"
)

func newRedemptionFixture(t *testing.T) (*gorm.DB, *RedemptionService, *models.Coupon) {
	t.Helper()
	db := openTestDB(t)
	campaigns := NewCampaignService(db)
	public := NewPublicService(db, campaigns)

	if _, err := campaigns.Create(uuid.New(), validCampaignRequest()); err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	result, err := public.Submit("summer", &dto.SubmitRequest{
		PromoCode:        "SUMMER25",
		CustomerName:     "A",
		CustomerWhatsApp: "+1555",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	var coupon models.Coupon
	if err := db.First(&coupon, "code = ?", result.CouponCode).Error; err != nil {
		t.Fatalf("load coupon: %v", err)
	}
	return db, NewRedemptionService(db), &coupon
}

func TestVerifyIsIdempotentAndSideEffectFree(t *testing.T) {
	db, svc, coupon := newRedemptionFixture(t)

	for i := 0; i < 3; i++ {
		result, err := svc.Verify("  " + coupon.Code + "  ")
		if err != nil {
			t.Fatalf("verify %d: %v", i, err)
		}
		if !result.Valid {
			t.Fatalf("verify %d: expected valid, got %+v", i, result)
		}
		if result.Coupon == nil || result.Coupon.CampaignName != "Summer" || result.Coupon.DiscountPercentage != 25 {
			t.Fatalf("verify %d: incomplete coupon view: %+v", i, result.Coupon)
		}
	}

	var reloaded models.Coupon
	if err := db.First(&reloaded, "id = ?", coupon.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != models.CouponStatusIssued {
		t.Fatalf("verify must not mutate coupon state, got %q", reloaded.Status)
	}
}

func TestVerifyNormalizesCase(t *testing.T) {
	_, svc, coupon := newRedemptionFixture(t)

	// Issued codes are uppercase; staff may type lowercase.
	lower := ""
	for _, r := range coupon.Code {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		lower += string(r)
	}
	result, err := svc.Verify(lower)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !result.Valid {
		t.Fatalf("lowercase code must verify: %+v", result)
	}
}

func TestVerifyUnknownCode(t *testing.T) {
	_, svc, _ := newRedemptionFixture(t)

	result, err := svc.Verify("NOSUCHCODE")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.Valid || result.Message != "code not found" {
		t.Fatalf("expected negative not-found result, got %+v", result)
	}
}

func TestRedeemOnceOnly(t *testing.T) {
	db, svc, coupon := newRedemptionFixture(t)

	first, err := svc.Redeem(coupon.ID, 500)
	if err != nil {
		t.Fatalf("first redeem: %v", err)
	}
	if first.PurchaseAmount != 500 || first.CouponID != coupon.ID {
		t.Fatalf("unexpected redemption: %+v", first)
	}

	if _, err := svc.Redeem(coupon.ID, 700); !errors.Is(err, ErrAlreadyRedeemed) {
		t.Fatalf("second redeem must be rejected, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Redemption{}).Where("coupon_id = ?", coupon.ID).Count(&count).Error; err != nil {
		t.Fatalf("count redemptions: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one redemption row, got %d", count)
	}
}

func TestVerifyAfterRedeemReportsAlreadyRedeemed(t *testing.T) {
	_, svc, coupon := newRedemptionFixture(t)

	if _, err := svc.Redeem(coupon.ID, 500); err != nil {
		t.Fatalf("redeem: %v", err)
	}

	result, err := svc.Verify(coupon.Code)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.Valid {
		t.Fatalf("redeemed coupon must not verify as valid")
	}
	if result.Message != "coupon already redeemed" {
		t.Fatalf("message must surface redeemed state, got %q", result.Message)
	}
	if result.Coupon == nil || result.Coupon.Status != models.CouponStatusRedeemed {
		t.Fatalf("view must show redeemed status: %+v", result.Coupon)
	}
}

func TestRedeemValidation(t *testing.T) {
	_, svc, coupon := newRedemptionFixture(t)

	if _, err := svc.Redeem(coupon.ID, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero amount: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Redeem(coupon.ID, -5); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative amount: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Redeem(uuid.New(), 500); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown coupon: expected ErrNotFound, got %v", err)
	}
}

func TestListRecentNewestFirst(t *testing.T) {
	_, svc, coupon := newRedemptionFixture(t)

	if _, err := svc.Redeem(coupon.ID, 500); err != nil {
		t.Fatalf("redeem: %v", err)
	}

	redemptions, err := svc.ListRecent(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(redemptions) != 1 || redemptions[0].CouponID != coupon.ID {
		t.Fatalf("unexpected listing: %+v", redemptions)
	}
}
