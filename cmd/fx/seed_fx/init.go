package seed_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"payledger/internal/config"
	"payledger/internal/services"
)

var Module = fx.Options(
	fx.Provide(services.NewSeeder),
	fx.Invoke(runSeeder),
)

func runSeeder(lc fx.Lifecycle, cfg config.Config, seeder *services.Seeder, log *zap.Logger) {
	if !cfg.SeedData {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("seeding database")
			return seeder.Seed(ctx)
		},
	})
}
