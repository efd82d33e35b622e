package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"brokerage_backend/internal/app/di"
	"brokerage_backend/internal/app/seed"
	authadapters "brokerage_backend/internal/feature/auth/adapters"
	infradb "brokerage_backend/internal/platform/db"
	jwtmw "brokerage_backend/internal/platform/jwt"
	"brokerage_backend/internal/platform/logging"
)

func main() {
	seedValue := flag.Uint64("seed", 1, "random seed for the demo portfolio")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	logging.Setup()

	cfg := infradb.LoadConfigFromEnv()
	// seed は空のDBに対して実行されるので常にマイグレーションする
	cfg.RunMigrations = true
	db, err := infradb.OpenDB(cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// seed ではキャッシュを使わない
	authUC, _ := di.NewAuthUsecase(db, jwtmw.LoadConfig())
	stocksUC := di.NewStocksUsecase(nil, db)
	s := seed.NewSeeder(stocksUC, authUC, authadapters.NewUserGorm(db), di.NewTradingUsecase(db), *seedValue)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rep, err := s.Run(ctx)
	if err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("database populated",
		"stocks_created", rep.StocksCreated,
		"demo_user_created", rep.UserCreated,
		"trades_placed", rep.TradesPlaced,
		"trades_skipped", rep.TradesSkipped,
	)
}
