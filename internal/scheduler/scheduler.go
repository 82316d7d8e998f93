package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Maintenance is the work run on a schedule
type Maintenance interface {
	CleanupExpiredForecasts() int
	LogStats()
}

// Scheduler periodically purges the forecast cache and logs bot stats
type Scheduler struct {
	scheduler     *gocron.Scheduler
	jobs          Maintenance
	purgeInterval time.Duration
	statsInterval time.Duration
	logger        *zap.Logger
}

// New creates a new Scheduler
func New(jobs Maintenance, purgeInterval, statsInterval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler:     gocron.NewScheduler(time.UTC),
		jobs:          jobs,
		purgeInterval: purgeInterval,
		statsInterval: statsInterval,
		logger:        logger,
	}
}

// Start schedules the jobs and starts the underlying scheduler
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.purgeInterval).WaitForSchedule().Do(func() {
		s.logger.Debug("Running forecast cache cleanup")
		s.jobs.CleanupExpiredForecasts()
	})
	if err != nil {
		return err
	}

	_, err = s.scheduler.Every(s.statsInterval).Do(s.jobs.LogStats)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("Scheduler started",
		zap.Duration("purge_interval", s.purgeInterval),
		zap.Duration("stats_interval", s.statsInterval),
	)
	return nil
}

// Stop stops the scheduler and cancels any future jobs
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
