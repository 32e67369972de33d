// file: internal/scheduler/scheduler.go
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fresherjobs/internal/services"
)

// sweepTimeout bounds a single expiry sweep.
const sweepTimeout = 5 * time.Minute

// Scheduler runs the daily posting-expiry sweep shortly after local
// midnight. The sweep is idempotent, so overlapping or repeated runs
// are harmless.
type Scheduler struct {
	jobService services.JobService
	logger     *zap.Logger
	stop       chan struct{}
	done       chan struct{}
}

// New creates a scheduler
func New(jobService services.JobService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		jobService: jobService,
		logger:     logger,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start launches the sweep loop. It returns immediately.
func (s *Scheduler) Start() {
	go s.run()
}

// Stop signals the loop to exit and waits for it.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) run() {
	defer close(s.done)

	// Sweep once at startup to cover postings that expired while the
	// server was down.
	s.sweep()

	for {
		timer := time.NewTimer(untilNextMidnight(time.Now()))
		select {
		case <-timer.C:
			s.sweep()
		case <-s.stop:
			timer.Stop()
			return
		}
	}
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	count, err := s.jobService.DeactivateExpired(ctx)
	if err != nil {
		s.logger.Error("Expiry sweep failed", zap.Error(err))
		return
	}

	s.logger.Info("Expiry sweep completed", zap.Int64("deactivated", count))
}

// untilNextMidnight returns the duration from now to the next local
// midnight.
func untilNextMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now)
}
