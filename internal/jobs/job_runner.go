package jobs

import (
	"time"

	"parkspot-backend/internal/config"
	"parkspot-backend/internal/logger"
	"parkspot-backend/internal/repository"
	"parkspot-backend/internal/storage"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	bookings repository.BookingRepository
	images   repository.ImageRepository
	storage  storage.StorageInterface
	config   *config.Config
	now      func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(bookings repository.BookingRepository, images repository.ImageRepository, store storage.StorageInterface, cfg *config.Config) *JobRunner {
	return &JobRunner{
		bookings: bookings,
		images:   images,
		storage:  store,
		config:   cfg,
		now:      time.Now,
	}
}

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
	start := time.Now()
	jobFunc()
	logger.Info("Job completed", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.CompletePastBookings()
	jr.PurgeStaleImages()
}
