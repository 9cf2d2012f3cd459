package jobs

import (
	"context"

	"visitdesk-station/internal/logger"
)

// RefreshActiveInvitations replaces the local cache with today's
// approved invitations from the invitation service.
func (jr *JobRunner) RefreshActiveInvitations() {
	jr.runWithRecovery("RefreshActiveInvitations", func() {
		ctx := context.Background()

		recs, err := jr.lookup.ListActive(ctx, jr.now())
		if err != nil {
			// Keep serving the last good snapshot on a failed refresh.
			logger.Error("Failed to refresh active invitations", "error", err)
			return
		}

		jr.cache.ReplaceAll(recs)
		logger.Info("Refreshed active invitations", "count", len(recs))
	})
}

// SweepExpiredInvitations drops cached records whose late check-in
// window has closed.
func (jr *JobRunner) SweepExpiredInvitations() {
	jr.runWithRecovery("SweepExpiredInvitations", func() {
		dropped := jr.cache.Sweep(jr.now())
		if dropped > 0 {
			logger.Info("Swept expired invitations from cache", "count", dropped)
		}
	})
}
