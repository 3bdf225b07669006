package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"parkspot-backend/internal/jobs"
	"parkspot-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler.
// A job with a bad expression is logged and skipped.
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	registered := 0
	for _, job := range []struct {
		name     string
		schedule string
		fn       func()
	}{
		{"CompletePastBookings", cfg.CompletePastBookings, s.jobs.CompletePastBookings},
		{"PurgeStaleImages", cfg.PurgeStaleImages, s.jobs.PurgeStaleImages},
	} {
		if _, err := s.cron.AddFunc(job.schedule, job.fn); err != nil {
			logger.Error("Failed to register job", "job", job.name, "schedule", job.schedule, "error", err)
			continue
		}
		logger.Debug("Registered job", "job", job.name, "schedule", job.schedule)
		registered++
	}

	logger.Info("Cron jobs registered", "count", registered)
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has jobs registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
