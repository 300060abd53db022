package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// ExpiredCouponStore deactivates coupons past their expiry.
type ExpiredCouponStore interface {
	DeactivateExpired(ctx context.Context) (int64, error)
}

// CouponExpiryWorker sweeps expired coupons on a fixed interval so listings
// and storefront checks never see an active coupon past its expiry for long.
type CouponExpiryWorker struct {
	coupons  ExpiredCouponStore
	interval time.Duration
}

// NewCouponExpiryWorker constructs a CouponExpiryWorker.
func NewCouponExpiryWorker(coupons ExpiredCouponStore, interval time.Duration) *CouponExpiryWorker {
	return &CouponExpiryWorker{
		coupons:  coupons,
		interval: interval,
	}
}

// Start begins the sweep loop and listens for context cancellation.
func (w *CouponExpiryWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting coupon expiry worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Coupon expiry worker stopped")
			return
		}
	}
}

func (w *CouponExpiryWorker) run(ctx context.Context) {
	n, err := w.coupons.DeactivateExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to deactivate expired coupons")
		return
	}
	if n > 0 {
		log.Info().Int64("count", n).Msg("Deactivated expired coupons")
	}
}
