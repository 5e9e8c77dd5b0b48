package main

import (
	"time"

	"github.com/google/uuid"
)

const retentionSweepInterval = time.Hour

// logRetention prunes log_entries rows older than the configured retention
// window. Runs until the app context is cancelled.
func (a *App) logRetention() {
	ticker := time.NewTicker(retentionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
			requestID := uuid.New()
			cutoff := time.Now().AddDate(0, 0, -a.config.logRetentionDays)

			deleted, err := a.store.Logs.DeleteBefore(a.ctx, requestID, cutoff)
			if err != nil {
				a.logger.Warn().Err(err).Msg("Failed to prune old log entries")
				continue
			}

			if deleted > 0 {
				a.logger.Info().Msgf("Pruned %d log entries older than %d days", deleted, a.config.logRetentionDays)
			}
		}
	}
}
