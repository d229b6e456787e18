package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"payledger/internal/config"
	"payledger/internal/infra"
)

var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(provideLogger),
	fx.Provide(
		func(cfg config.Config) config.DatabaseConfig { return cfg.Database },
		func(cfg config.Config) config.JobsConfig { return cfg.Jobs },
	),
)

func provideLogger(lc fx.Lifecycle, cfg config.Config) (*zap.Logger, error) {
	log, err := infra.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)

	lc.Append(fx.StopHook(func() {
		_ = log.Sync()
	}))
	return log, nil
}
