// Package jobs runs scheduled catalog maintenance
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/suteetoe/sareecatalog/pkg/logger"
	"go.uber.org/zap"
)

// Recounter rebuilds the stored variety counts
type Recounter interface {
	Recount(ctx context.Context) (int64, error)
}

// Scheduler owns the cron runner for maintenance jobs
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

// NewScheduler creates an idle Scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		timeout: 5 * time.Minute,
	}
}

// ScheduleRecount registers the variety count reconciliation under spec.
// An empty spec leaves the job disabled.
func (s *Scheduler) ScheduleRecount(spec string, r Recounter) error {
	if spec == "" {
		logger.GetLogger().Info("Variety recount job disabled")
		return nil
	}
	_, err := s.cron.AddFunc(spec, func() {
		RunRecount(context.Background(), r, s.timeout)
	})
	if err != nil {
		return fmt.Errorf("schedule variety recount %q: %w", spec, err)
	}
	logger.GetLogger().Info("Variety recount job scheduled", zap.String("schedule", spec))
	return nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish or ctx to end
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RunRecount performs one reconciliation pass
func RunRecount(ctx context.Context, r Recounter, timeout time.Duration) {
	log := logger.GetLogger()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	ctx = logger.WithContext(ctx, log.With(zap.String("job", "variety_recount")))

	start := time.Now()
	n, err := r.Recount(ctx)
	if err != nil {
		log.Error("Variety recount failed", zap.Error(err))
		return
	}
	log.Info("Variety recount completed",
		zap.Int64("varieties", n),
		zap.Duration("duration", time.Since(start)))
}
