package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kornnellio/adventuretime-sub001/internal/models"
)

// StaleIntentAge is how long an unpaid intent may sit before expiring.
const StaleIntentAge = 24 * time.Hour

// IntentExpiryCron sweeps payment intents abandoned mid-checkout. Without it
// intents stuck in pending or processing would clutter customer listings
// forever.
type IntentExpiryCron struct {
	bookingRepo models.BookingRepo
	logger      *slog.Logger
	cron        *cron.Cron
}

func NewIntentExpiryCron(bookingRepo models.BookingRepo, logger *slog.Logger) *IntentExpiryCron {
	return &IntentExpiryCron{
		bookingRepo: bookingRepo,
		logger:      logger,
		cron:        cron.New(),
	}
}

func (ic *IntentExpiryCron) Start() {
	ic.cron.AddFunc("@every 1h", ic.sweep)
	ic.cron.Start()
	ic.logger.Info("Intent expiry cron started", "interval", "1h", "stale_after", StaleIntentAge)
}

func (ic *IntentExpiryCron) Stop() {
	ic.cron.Stop()
}

func (ic *IntentExpiryCron) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expired, err := ic.bookingRepo.ExpireStaleIntents(ctx, time.Now().Add(-StaleIntentAge))
	if err != nil {
		ic.logger.Error("Failed to expire stale intents", "error", err)
		return
	}
	if expired > 0 {
		ic.logger.Info("Expired stale payment intents", "count", expired)
	}
}
