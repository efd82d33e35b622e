package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authentity "brokerage_backend/internal/feature/auth/domain/entity"
	stockentity "brokerage_backend/internal/feature/stocks/domain/entity"
	tradingentity "brokerage_backend/internal/feature/trading/domain/entity"
)

// retryInterval is the pause between connection attempts.
const retryInterval = 3 * time.Second

// Opener opens a gorm connection for a DSN. It is swapped out in tests.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err)
		time.Sleep(min(retryInterval, remaining))
	}
}

// OpenDB connects to the configured database and runs migrations when requested.
func OpenDB(cfg Config) (*gorm.DB, error) {
	gcfg := gormConfig(cfg.LogSQL)

	var open Opener
	switch cfg.Driver {
	case DriverPostgres:
		open = func(dsn string) (*gorm.DB, error) { return gorm.Open(postgres.Open(dsn), gcfg) }
	case DriverSQLite:
		open = func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), gcfg) }
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, open)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == DriverSQLite {
		// sqlite allows a single writer; WAL keeps readers unblocked.
		_ = db.Exec("PRAGMA journal_mode = WAL;").Error
		_ = db.Exec("PRAGMA foreign_keys = ON;").Error
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	slog.Info("database connected", "driver", cfg.Driver)
	return db, nil
}

// Migrate creates or updates the users, stocks, holdings and transactions tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authentity.User{},
		&stockentity.Stock{},
		&tradingentity.Holding{},
		&tradingentity.Transaction{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

func gormConfig(logSQL bool) *gorm.Config {
	l := logger.Default.LogMode(logger.Silent)
	if logSQL {
		l = logger.Default.LogMode(logger.Info)
	}
	return &gorm.Config{
		Logger:         l,
		TranslateError: true,
	}
}
