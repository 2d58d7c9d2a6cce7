package backup

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs periodic snapshots in the background.
type Scheduler struct {
	service  *Service
	interval time.Duration
	logger   *zap.Logger
}

// NewScheduler creates a scheduler ticking at the service's configured
// interval. Intervals below one hour are clamped to one hour.
func NewScheduler(service *Service, logger *zap.Logger) *Scheduler {
	hours := service.cfg.IntervalHours
	if hours < 1 {
		hours = 1
	}
	return &Scheduler{
		service:  service,
		interval: time.Duration(hours) * time.Hour,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, creating a snapshot on every tick. The
// first snapshot is attempted immediately so a fresh deployment has a backup
// before the first full interval passes.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Backup scheduler started", zap.Duration("interval", s.interval))

	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Backup scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	desc, err := s.service.Create(ctx, false)
	switch {
	case errors.Is(err, ErrSkipped):
		// Logged by the service.
	case err != nil:
		s.logger.Error("Scheduled backup failed", zap.Error(err))
	default:
		s.logger.Info("Scheduled backup completed", zap.String("stamp", desc.Stamp))
	}
}
