package jobs

import (
	"time"

	"visitdesk-station/internal/cache"
	"visitdesk-station/internal/config"
	"visitdesk-station/internal/logger"
	"visitdesk-station/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	lookup service.InvitationLookup
	cache  *cache.ActiveInvitations
	config *config.Config
	now    func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(lookup service.InvitationLookup, invCache *cache.ActiveInvitations, cfg *config.Config) *JobRunner {
	return &JobRunner{
		lookup: lookup,
		cache:  invCache,
		config: cfg,
		now:    time.Now,
	}
}

// Config returns the loaded configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.RefreshActiveInvitations()
	jr.SweepExpiredInvitations()
}
