// Package db opens the gorm connection backing the account ledger store.
package db

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// DriverPostgres selects gorm.io/driver/postgres.
	DriverPostgres = "postgres"
	// DriverSQLite selects gorm.io/driver/sqlite (local development).
	DriverSQLite = "sqlite"

	defaultSQLitePath     = "./brokerage.db"
	defaultConnectTimeout = 60 * time.Second
)

// Config holds the connection settings read from the environment.
type Config struct {
	Driver   string
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string

	// Path is the sqlite database file. Ignored for postgres.
	Path string

	ConnectTimeout time.Duration
	RunMigrations  bool
	LogSQL         bool
}

// LoadConfigFromEnv reads DB_* variables. Unset values fall back to a local sqlite file.
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:         getenv("DB_DRIVER", DriverSQLite),
		User:           os.Getenv("DB_USER"),
		Password:       os.Getenv("DB_PASSWORD"),
		Name:           os.Getenv("DB_NAME"),
		Host:           getenv("DB_HOST", "localhost"),
		Port:           getenv("DB_PORT", "5432"),
		SSLMode:        getenv("DB_SSLMODE", "disable"),
		Path:           getenv("DB_PATH", defaultSQLitePath),
		ConnectTimeout: defaultConnectTimeout,
		LogSQL:         os.Getenv("DB_LOG") == "true",
	}
	// sqlite はローカル用なので、未指定なら起動時にテーブルを作成します。
	cfg.RunMigrations = cfg.Driver == DriverSQLite
	if v, err := strconv.ParseBool(os.Getenv("RUN_MIGRATIONS")); err == nil {
		cfg.RunMigrations = v
	}
	if v := os.Getenv("DB_CONNECT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ConnectTimeout = d
		}
	}
	return cfg
}

// BuildDSN renders the driver specific connection string.
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverSQLite {
		return cfg.Path
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
