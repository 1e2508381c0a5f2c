// Package scheduler runs the recurring integrity sweep.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// danglingSweeper is the one operation the scheduler drives.
type danglingSweeper interface {
	SweepDanglingBookings(ctx context.Context) (int64, error)
}

// Scheduler runs the dangling-bookings sweep on a cron expression. Overlapping
// runs are skipped rather than queued.
type Scheduler struct {
	cron    *cron.Cron
	sweeper danglingSweeper
	logger  *slog.Logger
	timeout time.Duration
}

func New(sweeper danglingSweeper, logger *slog.Logger, timeout time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		sweeper: sweeper,
		logger:  logger,
		timeout: timeout,
	}
}

// Start registers the sweep under expr and starts the cron loop.
func (s *Scheduler) Start(expr string) error {
	_, err := s.cron.AddFunc(expr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("register sweep: %w", err)
	}
	s.cron.Start()
	s.logger.Info("integrity sweep scheduled", "cron", expr)
	return nil
}

// RunOnce executes the sweep immediately, outside the schedule.
func (s *Scheduler) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	count, err := s.sweeper.SweepDanglingBookings(ctx)
	if err != nil {
		s.logger.Error("integrity sweep failed", "error", err)
		return
	}
	s.logger.Info("integrity sweep completed", "dangling", count)
}

// Stop stops the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
