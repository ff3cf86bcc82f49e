package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal counts public promo-code submissions by outcome.
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dropenote_submissions_total",
			Help: "Public promo-code submissions by outcome",
		},
		[]string{"outcome"}, // valid, invalid, rejected
	)

	// CouponsIssuedTotal counts coupons issued on valid submissions.
	CouponsIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dropenote_coupons_issued_total",
			Help: "Coupons issued on valid public submissions",
		},
	)

	// VerificationsTotal counts staff coupon verifications by result.
	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dropenote_verifications_total",
			Help: "Staff coupon verifications by result",
		},
		[]string{"result"}, // ok, not_found, already_redeemed
	)

	// RedemptionsTotal counts completed in-store redemptions.
	RedemptionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dropenote_redemptions_total",
			Help: "Completed in-store coupon redemptions",
		},
	)

	// RedemptionAmount tracks purchase amounts recorded at redemption.
	RedemptionAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dropenote_redemption_amount",
			Help:    "Purchase amounts recorded at redemption",
			Buckets: []float64{100, 250, 500, 1000, 2500, 5000, 10000, 25000},
		},
	)
)
