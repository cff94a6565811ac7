package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/AminePrince/bmsbackend/internal/jobs"
	"github.com/AminePrince/bmsbackend/internal/logger"
)

// Scheduler drives the daily deadline sweep from the cron expressions in config.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler builds a scheduler around the job runner. Schedules run in UTC
// with seconds precision.
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithSeconds(),
		),
		jobs: jobRunner,
	}
	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	if _, err := s.cron.AddFunc(cfg.DeadlineSweep, s.jobs.RunDeadlineSweep); err != nil {
		logger.Error("Failed to register deadline sweep job", "schedule", cfg.DeadlineSweep, "error", err)
		return
	}
	logger.Info("Deadline sweep registered", "schedule", cfg.DeadlineSweep)
}

// Start begins the cron loop.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Cron scheduler started")
}

// Stop halts the cron loop and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning reports whether any jobs are registered.
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
