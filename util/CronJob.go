package util

import (
	"time"

	"go.uber.org/zap"
)

// Purger hard-deletes rows that were soft-deleted before the cutoff.
type Purger interface {
	PurgeDeleted(before time.Time) (int64, error)
}

// StartDailyPurge runs the purge every day at 12:00 local time, keeping rows deleted within retention.
func StartDailyPurge(repo Purger, retention time.Duration, logger *zap.Logger) {
	go func() {
		for {
			now := time.Now()
			nextRun := nextNoon(now)
			logger.Info("next soft-deleted config purge scheduled",
				zap.Duration("in", nextRun.Sub(now)), zap.Time("at", nextRun))

			time.Sleep(nextRun.Sub(now))

			purged, err := repo.PurgeDeleted(time.Now().Add(-retention))
			if err != nil {
				logger.Error("config purge failed", zap.Error(err))
			} else {
				logger.Info("config purge completed", zap.Int64("rows", purged))
			}

			// Step past 12:00 so the next calculation lands on tomorrow.
			time.Sleep(1 * time.Second)
		}
	}()
}

// nextNoon returns today at 12:00, or tomorrow at 12:00 once that has passed.
func nextNoon(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
