// Package cron runs the background janitor that keeps persisted snapshots
// honest between visits: payment records whose expiry has passed are cleared
// instead of waiting for the next page load to notice.
package cron

import (
	"context"
	"strings"
	"time"

	"campsite/database"
	"campsite/services/reservation"
	"campsite/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartJanitor schedules a minutely sweep over the reservation snapshots.
// Store.Get applies the expiry rule, so the sweep just reads every session.
func StartJanitor(store reservation.SessionStore, kv database.SnapshotKV, logger *zap.Logger) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@every 1m", func() {
		sweep(store, kv, logger)
	})
	if err != nil {
		logger.Fatal("Failed to schedule snapshot janitor", zap.Error(err))
	}
	c.Start()
	logger.Info("Snapshot janitor started")
	return c
}

func sweep(store reservation.SessionStore, kv database.SnapshotKV, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	keys, err := kv.Keys(ctx, utils.ReservationStorePrefix+"*")
	if err != nil {
		logger.Warn("Janitor sweep failed to list snapshots", zap.Error(err))
		return
	}

	for _, key := range keys {
		sessionID := strings.TrimPrefix(key, utils.ReservationStorePrefix)
		if _, err := store.Get(ctx, sessionID); err != nil {
			logger.Warn("Janitor sweep failed to read snapshot",
				zap.String("session", sessionID), zap.Error(err))
		}
	}
	logger.Debug("Janitor sweep finished", zap.Int("sessions", len(keys)))
}
