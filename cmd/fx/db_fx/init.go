package db_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"payledger/internal/config"
	"payledger/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB(lc fx.Lifecycle, cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := infra.OpenDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.StopHook(func() {
		infra.CloseDatabase(db, log)
	}))
	return db, nil
}
