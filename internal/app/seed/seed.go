// Package seed populates a fresh database with reference stocks and a demo account.
// Each step is skipped when its data already exists, so Run can be repeated safely.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	authdomain "brokerage_backend/internal/feature/auth/domain"
	authentity "brokerage_backend/internal/feature/auth/domain/entity"
	authusecase "brokerage_backend/internal/feature/auth/usecase"
	stockentity "brokerage_backend/internal/feature/stocks/domain/entity"
	stocksusecase "brokerage_backend/internal/feature/stocks/usecase"
	tradingdomain "brokerage_backend/internal/feature/trading/domain"
	tradingentity "brokerage_backend/internal/feature/trading/domain/entity"
)

const (
	portfolioSize    = 15
	minBuysPerStock  = 3
	maxBuysPerStock  = 8
	maxBuyQuantity   = 50
	profitableChance = 0.7
	demoPAN          = "ABCDE1234F"
	demoPhone        = "+919876543210"
	demoName         = "Demo User"
)

// Catalog creates and lists stocks.
type Catalog interface {
	List(ctx context.Context) ([]stockentity.Stock, error)
	Create(ctx context.Context, in stocksusecase.StockInput) (*stockentity.Stock, error)
}

// Accounts registers users and deposits funds.
type Accounts interface {
	Register(ctx context.Context, in authusecase.RegisterInput) (*authentity.User, error)
	AddFunds(ctx context.Context, userID uint, amount float64) (*authentity.User, error)
}

// UserFinder looks a user up by email.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*authentity.User, error)
}

// Trader places demo orders through the settlement engine.
type Trader interface {
	Buy(ctx context.Context, userID, stockID uint, quantity int64, price float64) (*tradingentity.TransactionView, error)
	ListTransactions(ctx context.Context, userID uint) ([]tradingentity.TransactionView, error)
}

// Report summarises what Run changed.
type Report struct {
	StocksCreated int
	UserCreated   bool
	TradesPlaced  int
	TradesSkipped int
}

// Seeder wires the usecases it drives. rng makes the demo portfolio reproducible.
type Seeder struct {
	catalog  Catalog
	accounts Accounts
	users    UserFinder
	trader   Trader
	rng      *rand.Rand
}

func NewSeeder(catalog Catalog, accounts Accounts, users UserFinder, trader Trader, seed uint64) *Seeder {
	return &Seeder{
		catalog:  catalog,
		accounts: accounts,
		users:    users,
		trader:   trader,
		rng:      rand.New(rand.NewPCG(seed, seed)),
	}
}

// Run seeds stocks, then the demo user, then the demo user's trades.
func (s *Seeder) Run(ctx context.Context) (Report, error) {
	var rep Report

	n, err := s.seedStocks(ctx)
	if err != nil {
		return rep, err
	}
	rep.StocksCreated = n

	user, created, err := s.demoUser(ctx)
	if err != nil {
		return rep, err
	}
	rep.UserCreated = created

	placed, skipped, err := s.demoTrades(ctx, user.ID)
	if err != nil {
		return rep, err
	}
	rep.TradesPlaced, rep.TradesSkipped = placed, skipped
	return rep, nil
}

func (s *Seeder) seedStocks(ctx context.Context) (int, error) {
	existing, err := s.catalog.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list stocks: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("stocks already present, skipping", "count", len(existing))
		return 0, nil
	}

	var created int
	for _, in := range catalogue() {
		if _, err := s.catalog.Create(ctx, in); err != nil {
			return created, fmt.Errorf("create stock %s: %w", in.Symbol, err)
		}
		created++
	}
	slog.Info("stocks created", "count", created)
	return created, nil
}

func (s *Seeder) demoUser(ctx context.Context) (*authentity.User, bool, error) {
	u, err := s.users.FindByEmail(ctx, DemoEmail)
	if err == nil {
		slog.Info("demo user already exists, skipping", "user_id", u.ID)
		return u, false, nil
	}
	if !errors.Is(err, authdomain.ErrUserNotFound) {
		return nil, false, fmt.Errorf("find demo user: %w", err)
	}

	pan, phone := demoPAN, demoPhone
	u, err = s.accounts.Register(ctx, authusecase.RegisterInput{
		Name:      demoName,
		Email:     DemoEmail,
		Password:  DemoPassword,
		PANNumber: &pan,
		Phone:     &phone,
	})
	if err != nil {
		return nil, false, fmt.Errorf("register demo user: %w", err)
	}
	if u, err = s.accounts.AddFunds(ctx, u.ID, DemoBalance); err != nil {
		return nil, false, fmt.Errorf("fund demo user: %w", err)
	}
	slog.Info("demo user created", "user_id", u.ID, "balance", u.Balance)
	return u, true, nil
}

// demoTrades buys a handful of stocks at prices around the current quote.
// Orders the balance cannot cover are skipped.
func (s *Seeder) demoTrades(ctx context.Context, userID uint) (placed, skipped int, err error) {
	txs, err := s.trader.ListTransactions(ctx, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("list demo transactions: %w", err)
	}
	if len(txs) > 0 {
		slog.Info("demo user already has transactions, skipping", "count", len(txs))
		return 0, 0, nil
	}

	stocks, err := s.catalog.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list stocks: %w", err)
	}

	for _, i := range s.rng.Perm(len(stocks))[:min(portfolioSize, len(stocks))] {
		stock := stocks[i]
		profitable := s.rng.Float64() < profitableChance
		buys := minBuysPerStock + s.rng.IntN(maxBuysPerStock-minBuysPerStock+1)

		for range buys {
			qty := int64(1 + s.rng.IntN(maxBuyQuantity))
			price := s.demoPrice(stock.CurrentPrice, profitable)

			_, err := s.trader.Buy(ctx, userID, stock.ID, qty, price)
			switch {
			case err == nil:
				placed++
			case errors.Is(err, tradingdomain.ErrInsufficientFunds):
				skipped++
			default:
				return placed, skipped, fmt.Errorf("demo buy %s: %w", stock.Symbol, err)
			}
		}
	}
	slog.Info("demo trades placed", "placed", placed, "skipped", skipped)
	return placed, skipped, nil
}

// demoPrice は利益銘柄なら現在値の80〜95%、損失銘柄なら105〜120%の価格を返す（小数2桁）。
func (s *Seeder) demoPrice(current float64, profitable bool) float64 {
	factor := 1.05 + 0.15*s.rng.Float64()
	if profitable {
		factor = 0.80 + 0.15*s.rng.Float64()
	}
	return decimal.NewFromFloat(current).Mul(decimal.NewFromFloat(factor)).Round(2).InexactFloat64()
}
