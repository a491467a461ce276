package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/wordsnap/wordsnap/internal/usecase"
)

// Scheduler runs the periodic statistics refresh so dashboard numbers stay
// close to the source tables without recomputing on every read.
type Scheduler struct {
	scheduler *gocron.Scheduler
	stats     usecase.StatsUsecase
	logger    *logrus.Logger
	interval  time.Duration
}

// New creates a new scheduler instance
func New(stats usecase.StatsUsecase, logger *logrus.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		stats:     stats,
		logger:    logger,
		interval:  interval,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	if _, err := s.scheduler.Every(s.interval).Do(s.refreshStatistics); err != nil {
		s.logger.WithError(err).Error("schedule statistics refresh failed")
		return
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	s.logger.WithField("interval", s.interval.String()).Info("statistics refresh scheduled")
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) refreshStatistics() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.stats.RefreshAll(ctx); err != nil {
		s.logger.WithError(err).Error("refresh user statistics failed")
		return
	}
	s.logger.Debug("user statistics refreshed")
}
