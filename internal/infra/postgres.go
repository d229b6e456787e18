package infra

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"payledger/internal/config"
	dbm "payledger/internal/models/db_models"
)

// OpenDatabase connects to the configured store and applies the schema.
func OpenDatabase(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case config.DriverSqlite:
		db, err = OpenSqlite(cfg.SqlitePath, cfg.LogQueries)
	default:
		db, err = OpenPostgresql(cfg)
	}
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		CloseDatabase(db, log)
		return nil, err
	}

	log.Info("database ready", zap.String("driver", cfg.Driver))
	return db, nil
}

func gormConfig(logQueries bool) *gorm.Config {
	level := logger.Silent
	if logQueries {
		level = logger.Info
	}
	return &gorm.Config{
		// unique violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func OpenPostgresql(cfg config.DatabaseConfig) (*gorm.DB, error) {
	connectionPool, err := gorm.Open(postgres.Open(cfg.PostgresURL), gormConfig(cfg.LogQueries))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := connectionPool.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	return connectionPool, nil
}

// OpenSqlite opens a single-connection sqlite database. One connection makes
// every transaction run serially, which sqlite needs for write transactions anyway.
func OpenSqlite(path string, logQueries bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(logQueries))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&dbm.Merchant{},
		&dbm.Account{},
		&dbm.PaymentMethod{},
		&dbm.Transaction{},
		&dbm.RefundRequest{},
		&dbm.User{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func CloseDatabase(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("error closing database connection", zap.Error(err))
	} else {
		log.Info("database connection closed")
	}
}
