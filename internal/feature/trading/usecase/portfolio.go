package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	stockdomain "brokerage_backend/internal/feature/stocks/domain"
	stockentity "brokerage_backend/internal/feature/stocks/domain/entity"
	"brokerage_backend/internal/feature/trading/domain/entity"
)

// Summarize はユーザーの保有を現在値で評価します。
// 価格は呼び出し時点のものを使い、キャッシュしません。
// 保有が参照する銘柄が存在しない場合は ErrStockNotFound で失敗します。
func (u *TradingUsecase) Summarize(ctx context.Context, userID uint) (*entity.PortfolioSummary, error) {
	views, err := u.ListHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}

	invested := decimal.Zero
	current := decimal.Zero
	for _, v := range views {
		qty := decimal.NewFromInt(v.Quantity)
		invested = invested.Add(decimal.NewFromFloat(v.AveragePrice).Mul(qty))
		current = current.Add(decimal.NewFromFloat(v.Stock.CurrentPrice).Mul(qty))
	}

	return &entity.PortfolioSummary{
		InvestedValue: invested.InexactFloat64(),
		CurrentValue:  current.InexactFloat64(),
		PnL:           current.Sub(invested).InexactFloat64(),
		Holdings:      views,
	}, nil
}

// ListHoldings は保有を stock_id 昇順で、銘柄情報付きで返します。
func (u *TradingUsecase) ListHoldings(ctx context.Context, userID uint) ([]entity.HoldingView, error) {
	holdings, err := u.ledger.ListHoldings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	stocks, err := u.stocksFor(ctx, len(holdings), func(i int) uint { return holdings[i].StockID })
	if err != nil {
		return nil, err
	}

	out := make([]entity.HoldingView, 0, len(holdings))
	for _, h := range holdings {
		s, ok := stocks[h.StockID]
		if !ok {
			return nil, fmt.Errorf("%w: stock %d held by user %d", stockdomain.ErrStockNotFound, h.StockID, userID)
		}
		out = append(out, entity.HoldingView{Holding: h, Stock: s})
	}
	return out, nil
}

// ListTransactions は取引履歴を時刻順で、銘柄情報付きで返します。
func (u *TradingUsecase) ListTransactions(ctx context.Context, userID uint) ([]entity.TransactionView, error) {
	txs, err := u.ledger.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	stocks, err := u.stocksFor(ctx, len(txs), func(i int) uint { return txs[i].StockID })
	if err != nil {
		return nil, err
	}

	out := make([]entity.TransactionView, 0, len(txs))
	for _, t := range txs {
		s, ok := stocks[t.StockID]
		if !ok {
			return nil, fmt.Errorf("%w: stock %d in transaction %d", stockdomain.ErrStockNotFound, t.StockID, t.ID)
		}
		out = append(out, entity.TransactionView{Transaction: t, Stock: s})
	}
	return out, nil
}

// stocksFor loads the distinct stocks referenced by n rows.
func (u *TradingUsecase) stocksFor(ctx context.Context, n int, stockID func(i int) uint) (map[uint]stockentity.Stock, error) {
	if n == 0 {
		return map[uint]stockentity.Stock{}, nil
	}
	seen := make(map[uint]struct{}, n)
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		id := stockID(i)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	stocks, err := u.ledger.FindStocks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load stocks: %w", err)
	}
	return stocks, nil
}
