package usecase

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stockdomain "brokerage_backend/internal/feature/stocks/domain"
	stockentity "brokerage_backend/internal/feature/stocks/domain/entity"
	"brokerage_backend/internal/feature/trading/domain"
)

const (
	testUser  uint = 1
	testStock uint = 10
)

func newTestUsecase(t *testing.T, balance float64) (*TradingUsecase, *memLedger) {
	t.Helper()
	ledger := newMemLedger()
	ledger.addUser(testUser, balance)
	ledger.addStock(stockentity.Stock{ID: testStock, Symbol: "RELIANCE", Name: "Reliance Industries Ltd", Exchange: "NSE", CurrentPrice: 2500})
	uc := NewTradingUsecase(ledger)
	uc.now = func() time.Time { return time.Date(2024, 1, 2, 9, 15, 0, 0, time.UTC) }
	return uc, ledger
}

func TestSettle_BuySellScenario(t *testing.T) {
	ctx := context.Background()
	uc, ledger := newTestUsecase(t, 100000)

	// Buy 10 @ 2500.
	tx, err := uc.Buy(ctx, testUser, testStock, 10, 2500)
	require.NoError(t, err)
	assert.Equal(t, domain.SideBuy, tx.Side)
	assert.Equal(t, 25000.0, tx.TotalAmount)
	assert.NotEqual(t, uuid.Nil, tx.Reference)
	assert.Equal(t, "RELIANCE", tx.Stock.Symbol)
	assert.Equal(t, 75000.0, ledger.balance(testUser))
	h, ok := ledger.holding(testUser, testStock)
	require.True(t, ok)
	assert.Equal(t, int64(10), h.Quantity)
	assert.Equal(t, 2500.0, h.AveragePrice)

	// Buy 5 more @ 2600.
	_, err = uc.Buy(ctx, testUser, testStock, 5, 2600)
	require.NoError(t, err)
	assert.Equal(t, 62000.0, ledger.balance(testUser))
	h, _ = ledger.holding(testUser, testStock)
	assert.Equal(t, int64(15), h.Quantity)
	assert.InDelta(t, 2533.33, h.AveragePrice, 0.005)

	// Selling more than held fails and changes nothing.
	_, err = uc.Sell(ctx, testUser, testStock, 16, 2700)
	assert.ErrorIs(t, err, domain.ErrInsufficientShares)
	assert.Equal(t, 62000.0, ledger.balance(testUser))

	// Sell all 15 @ 2700.
	tx, err = uc.Sell(ctx, testUser, testStock, 15, 2700)
	require.NoError(t, err)
	assert.Equal(t, domain.SideSell, tx.Side)
	assert.Equal(t, 40500.0, tx.TotalAmount)
	assert.Equal(t, 102500.0, ledger.balance(testUser))
	_, ok = ledger.holding(testUser, testStock)
	assert.False(t, ok, "holding sold to zero must be deleted")

	holdings, err := uc.ListHoldings(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, holdings)

	txs, err := uc.ListTransactions(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, "RELIANCE", txs[2].Stock.Symbol)
}

func TestSettle_SellKeepsAveragePrice(t *testing.T) {
	ctx := context.Background()
	uc, ledger := newTestUsecase(t, 100000)

	_, err := uc.Buy(ctx, testUser, testStock, 10, 2500)
	require.NoError(t, err)
	_, err = uc.Sell(ctx, testUser, testStock, 4, 3000)
	require.NoError(t, err)

	h, ok := ledger.holding(testUser, testStock)
	require.True(t, ok)
	assert.Equal(t, int64(6), h.Quantity)
	assert.Equal(t, 2500.0, h.AveragePrice)
	assert.Equal(t, 87000.0, ledger.balance(testUser))
}

func TestSettle_InsufficientShares(t *testing.T) {
	ctx := context.Background()
	uc, ledger := newTestUsecase(t, 100000)
	_, err := uc.Buy(ctx, testUser, testStock, 3, 100)
	require.NoError(t, err)

	_, err = uc.Sell(ctx, testUser, testStock, 5, 100)

	assert.ErrorIs(t, err, domain.ErrInsufficientShares)
	h, _ := ledger.holding(testUser, testStock)
	assert.Equal(t, int64(3), h.Quantity)
	assert.Equal(t, 99700.0, ledger.balance(testUser))
	assert.Equal(t, 1, ledger.transactionCount())
}

func TestSettle_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		balance float64
		req     TradeRequest
		wantErr error
	}{
		{"insufficient funds", 100, TradeRequest{UserID: testUser, StockID: testStock, Side: domain.SideBuy, Quantity: 1, Price: 100.01}, domain.ErrInsufficientFunds},
		{"no position", 1000, TradeRequest{UserID: testUser, StockID: testStock, Side: domain.SideSell, Quantity: 1, Price: 1}, domain.ErrNoPosition},
		{"unknown stock", 1000, TradeRequest{UserID: testUser, StockID: 999, Side: domain.SideBuy, Quantity: 1, Price: 1}, stockdomain.ErrStockNotFound},
		{"unknown account", 1000, TradeRequest{UserID: 42, StockID: testStock, Side: domain.SideBuy, Quantity: 1, Price: 1}, domain.ErrAccountNotFound},
		{"zero quantity", 1000, TradeRequest{UserID: testUser, StockID: testStock, Side: domain.SideBuy, Quantity: 0, Price: 1}, domain.ErrInvalidQuantity},
		{"negative quantity", 1000, TradeRequest{UserID: testUser, StockID: testStock, Side: domain.SideSell, Quantity: -3, Price: 1}, domain.ErrInvalidQuantity},
		{"negative price", 1000, TradeRequest{UserID: testUser, StockID: testStock, Side: domain.SideBuy, Quantity: 1, Price: -1}, domain.ErrInvalidPrice},
		{"nan price", 1000, TradeRequest{UserID: testUser, StockID: testStock, Side: domain.SideBuy, Quantity: 1, Price: math.NaN()}, domain.ErrInvalidPrice},
		{"unknown side", 1000, TradeRequest{UserID: testUser, StockID: testStock, Side: domain.Side("HOLD"), Quantity: 1, Price: 1}, domain.ErrInvalidSide},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, ledger := newTestUsecase(t, tt.balance)

			tx, err := uc.Settle(context.Background(), tt.req)

			assert.Nil(t, tx)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.balance, ledger.balance(testUser))
			assert.Zero(t, ledger.transactionCount())
		})
	}
}

func TestSettle_ValidationErrorsAreValidation(t *testing.T) {
	for _, err := range []error{domain.ErrInvalidQuantity, domain.ErrInvalidPrice, domain.ErrInvalidSide, domain.ErrSideMismatch, domain.ErrPositionTooLarge} {
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestSettle_BuyRejectsQuantityOverflow(t *testing.T) {
	tests := []struct {
		name    string
		balance float64
		first   int64
		second  int64
		price   float64
	}{
		{"max then one at zero price", 0, math.MaxInt64, 1, 0},
		{"two halves at a cent", 1e18, math.MaxInt64 / 2, math.MaxInt64/2 + 10, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, ledger := newTestUsecase(t, tt.balance)
			_, err := uc.Buy(context.Background(), testUser, testStock, tt.first, tt.price)
			require.NoError(t, err)
			before := ledger.balance(testUser)

			tx, err := uc.Buy(context.Background(), testUser, testStock, tt.second, tt.price)

			assert.Nil(t, tx)
			assert.ErrorIs(t, err, domain.ErrPositionTooLarge)
			assert.ErrorIs(t, err, domain.ErrValidation)
			h, ok := ledger.holding(testUser, testStock)
			require.True(t, ok)
			assert.Equal(t, tt.first, h.Quantity)
			assert.Equal(t, tt.price, h.AveragePrice)
			assert.Equal(t, before, ledger.balance(testUser))
			assert.Equal(t, 1, ledger.transactionCount())
		})
	}
}

func TestSettle_ZeroPriceBuy(t *testing.T) {
	uc, ledger := newTestUsecase(t, 0)

	tx, err := uc.Buy(context.Background(), testUser, testStock, 5, 0)

	require.NoError(t, err)
	assert.Zero(t, tx.TotalAmount)
	assert.Zero(t, ledger.balance(testUser))
	h, ok := ledger.holding(testUser, testStock)
	require.True(t, ok)
	assert.Zero(t, h.AveragePrice)
}

func TestSettle_StoreFailureRollsBack(t *testing.T) {
	uc, ledger := newTestUsecase(t, 1000)
	ledger.failAppend = errors.New("disk full")

	_, err := uc.Buy(context.Background(), testUser, testStock, 2, 100)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record transaction")
	assert.Equal(t, 1000.0, ledger.balance(testUser))
	_, ok := ledger.holding(testUser, testStock)
	assert.False(t, ok)
}

func TestSettle_ConcurrentBuysForOneUser(t *testing.T) {
	const n = 40
	uc, ledger := newTestUsecase(t, 10000)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Buy(context.Background(), testUser, testStock, 1, 10)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 10000.0-n*10, ledger.balance(testUser))
	h, ok := ledger.holding(testUser, testStock)
	require.True(t, ok)
	assert.Equal(t, int64(n), h.Quantity)
	assert.Equal(t, n, ledger.transactionCount())
	assert.Zero(t, uc.locks.size())
}

func TestSettle_ConcurrentSellsNeverOversell(t *testing.T) {
	uc, ledger := newTestUsecase(t, 1000)
	_, err := uc.Buy(context.Background(), testUser, testStock, 10, 10)
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Sell(context.Background(), testUser, testStock, 1, 10)
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
				return
			}
			if !errors.Is(err, domain.ErrNoPosition) && !errors.Is(err, domain.ErrInsufficientShares) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, accepted)
	assert.Equal(t, 1000.0, ledger.balance(testUser))
	_, ok := ledger.holding(testUser, testStock)
	assert.False(t, ok)
}
