package jobs

import (
	"github.com/AminePrince/bmsbackend/internal/clock"
	"github.com/AminePrince/bmsbackend/internal/config"
	"github.com/AminePrince/bmsbackend/internal/logger"
	"github.com/AminePrince/bmsbackend/internal/repository/postgres"
	"github.com/AminePrince/bmsbackend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store    *postgres.Store
	services *Services
	config   *config.Config
	clk      clock.Clock
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Notification service.NotificationService
	Email        service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, services *Services, cfg *config.Config, clk clock.Clock) *JobRunner {
	return &JobRunner{
		store:    store,
		services: services,
		config:   cfg,
		clk:      clk,
	}
}

// Config exposes the loaded configuration to the scheduler.
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

// RunAllDailyJobs runs all daily jobs (for manual execution)
func (jr *JobRunner) RunAllDailyJobs() {
	jr.RunDeadlineSweep()
}
