package jobs_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"payledger/internal/config"
	"payledger/internal/jobs"
	"payledger/internal/services"
	mem "payledger/pkg/memcache"
)

var Module = fx.Options(
	fx.Provide(provideScheduler),
	fx.Invoke(func(*jobs.Scheduler) {}),
)

func provideScheduler(
	lc fx.Lifecycle,
	cfg config.JobsConfig,
	reconciler services.ReconciliationServiceInterface,
	idempotency mem.IdempotencyStore,
	log *zap.Logger,
) (*jobs.Scheduler, error) {
	scheduler, err := jobs.NewScheduler(cfg, reconciler, idempotency, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: scheduler.Stop,
	})
	return scheduler, nil
}
