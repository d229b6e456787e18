package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Log         LogConfig
	Jobs        JobsConfig
	Idempotency IdempotencyConfig
	SeedData    bool `mapstructure:"seed_data"`
}

type ServerConfig struct {
	Port    string
	GinMode string `mapstructure:"gin_mode"`
}

// DatabaseConfig selects the backing store. Driver is "postgres" or "sqlite".
type DatabaseConfig struct {
	Driver       string
	PostgresURL  string `mapstructure:"postgres_url"`
	SqlitePath   string `mapstructure:"sqlite_path"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	LogQueries   bool   `mapstructure:"log_queries"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type LogConfig struct {
	Level  string
	Format string // "json" | "console"
}

type JobsConfig struct {
	// Cron spec for the ledger reconciliation job; empty disables it.
	ReconcileCron string `mapstructure:"reconcile_cron"`
}

type IdempotencyConfig struct {
	TTL time.Duration
}

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

// Load reads a .env file when present, then environment variables on top of
// defaults. Keys map to upper snake case env vars (server.port -> SERVER_PORT)
// with a few flat aliases kept for existing deployments (PORT, POSTGRES_URL, JWT_SECRET).
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.postgres_url", "")
	v.SetDefault("database.sqlite_path", "payledger.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.log_queries", false)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "60m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("jobs.reconcile_cron", "@every 15m")
	v.SetDefault("idempotency.ttl", "24h")
	v.SetDefault("seed_data", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("server.gin_mode", "SERVER_GIN_MODE", "GIN_MODE")
	_ = v.BindEnv("database.driver", "DATABASE_DRIVER", "DB_DRIVER")
	_ = v.BindEnv("database.postgres_url", "DATABASE_POSTGRES_URL", "POSTGRES_URL")
	_ = v.BindEnv("database.sqlite_path", "DATABASE_SQLITE_PATH", "SQLITE_PATH")
	_ = v.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("jobs.reconcile_cron", "JOBS_RECONCILE_CRON", "RECONCILE_CRON")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	// viper's default decode hooks handle "60m" -> time.Duration
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.PostgresURL == "" {
			return fmt.Errorf("config: POSTGRES_URL is required for the postgres driver")
		}
	case DriverSqlite:
		if c.Database.SqlitePath == "" {
			return fmt.Errorf("config: SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("config: token ttl must be positive")
	}
	return nil
}
