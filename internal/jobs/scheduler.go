package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"payledger/internal/config"
	"payledger/internal/services"
	mem "payledger/pkg/memcache"
)

const (
	idempotencyPurgeSpec = "@every 1m"
	reconcileTimeout     = 5 * time.Minute
)

// Scheduler runs the background jobs on a cron. Overlapping runs of the same
// job are skipped and a panicking job is logged instead of killing the process.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

func NewScheduler(
	cfg config.JobsConfig,
	reconciler services.ReconciliationServiceInterface,
	idempotency mem.IdempotencyStore,
	log *zap.Logger,
) (*Scheduler, error) {
	log = log.Named("jobs")
	cl := cronLogger{log.Sugar()}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	if cfg.ReconcileCron != "" {
		if _, err := c.AddFunc(cfg.ReconcileCron, ReconcileLedger(reconciler, log)); err != nil {
			return nil, fmt.Errorf("schedule reconciliation %q: %w", cfg.ReconcileCron, err)
		}
		log.Info("reconciliation job scheduled", zap.String("spec", cfg.ReconcileCron))
	}

	if _, err := c.AddFunc(idempotencyPurgeSpec, PurgeIdempotencyKeys(idempotency, log)); err != nil {
		return nil, fmt.Errorf("schedule idempotency purge: %w", err)
	}

	return &Scheduler{cron: c, log: log}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs to finish or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func ReconcileLedger(reconciler services.ReconciliationServiceInterface, log *zap.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()

		report, err := reconciler.Reconcile(ctx)
		if err != nil {
			log.Error("reconciliation job failed", zap.Error(err))
			return
		}
		if !report.Balanced() {
			log.Error("ledger out of balance", zap.Int("drifted_accounts", len(report.Drifted)))
		}
	}
}

func PurgeIdempotencyKeys(store mem.IdempotencyStore, log *zap.Logger) func() {
	return func() {
		if n := store.Purge(); n > 0 {
			log.Debug("expired idempotency keys purged", zap.Int("count", n))
		}
	}
}

type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
