// Package dto はtradingフィーチャーのHTTPトランスポート層のDTOを定義します。
package dto

import (
	"time"

	"github.com/google/uuid"

	stockentity "brokerage_backend/internal/feature/stocks/domain/entity"
	"brokerage_backend/internal/feature/trading/domain/entity"
)

// TradeReq is the body of POST /trading/buy and POST /trading/sell.
// TransactionType may be omitted; when present it must match the endpoint.
type TradeReq struct {
	StockID         uint     `json:"stock_id" binding:"required"`
	TransactionType string   `json:"transaction_type"`
	Quantity        int64    `json:"quantity" binding:"required"`
	Price           *float64 `json:"price" binding:"required"`
}

// StockBrief is the stock data embedded in holding and transaction rows.
type StockBrief struct {
	ID           uint    `json:"id"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Exchange     string  `json:"exchange"`
	CurrentPrice float64 `json:"current_price"`
}

// TransactionRes is one ledger entry.
type TransactionRes struct {
	ID              uint        `json:"id"`
	Reference       uuid.UUID   `json:"reference"`
	UserID          uint        `json:"user_id"`
	StockID         uint        `json:"stock_id"`
	TransactionType string      `json:"transaction_type"`
	Quantity        int64       `json:"quantity"`
	Price           float64     `json:"price"`
	TotalAmount     float64     `json:"total_amount"`
	Timestamp       time.Time   `json:"timestamp"`
	Stock           *StockBrief `json:"stock,omitempty"`
}

// HoldingRes is one open position valued at the current price.
type HoldingRes struct {
	ID           uint       `json:"id"`
	UserID       uint       `json:"user_id"`
	StockID      uint       `json:"stock_id"`
	Quantity     int64      `json:"quantity"`
	AveragePrice float64    `json:"average_price"`
	CurrentValue float64    `json:"current_value"`
	Stock        StockBrief `json:"stock"`
}

// PortfolioRes is the body of GET /trading/portfolio.
type PortfolioRes struct {
	InvestedValue float64      `json:"invested_value"`
	CurrentValue  float64      `json:"current_value"`
	PnL           float64      `json:"pnl"`
	Holdings      []HoldingRes `json:"holdings"`
}

func newStockBrief(s stockentity.Stock) StockBrief {
	return StockBrief{
		ID:           s.ID,
		Symbol:       s.Symbol,
		Name:         s.Name,
		Exchange:     s.Exchange,
		CurrentPrice: s.CurrentPrice,
	}
}

// newTransactionRes converts a ledger entry without stock data.
func newTransactionRes(t *entity.Transaction) TransactionRes {
	return TransactionRes{
		ID:              t.ID,
		Reference:       t.Reference,
		UserID:          t.UserID,
		StockID:         t.StockID,
		TransactionType: t.Side.String(),
		Quantity:        t.Quantity,
		Price:           t.Price,
		TotalAmount:     t.TotalAmount,
		Timestamp:       t.Timestamp,
	}
}

// NewTransactionViewRes converts a ledger entry with its stock.
func NewTransactionViewRes(v entity.TransactionView) TransactionRes {
	res := newTransactionRes(&v.Transaction)
	brief := newStockBrief(v.Stock)
	res.Stock = &brief
	return res
}

// NewHoldingRes converts a holding with its stock.
func NewHoldingRes(v entity.HoldingView) HoldingRes {
	return HoldingRes{
		ID:           v.ID,
		UserID:       v.UserID,
		StockID:      v.StockID,
		Quantity:     v.Quantity,
		AveragePrice: v.AveragePrice,
		CurrentValue: v.Stock.CurrentPrice * float64(v.Quantity),
		Stock:        newStockBrief(v.Stock),
	}
}

// NewPortfolioRes converts a portfolio summary.
func NewPortfolioRes(s *entity.PortfolioSummary) PortfolioRes {
	holdings := make([]HoldingRes, 0, len(s.Holdings))
	for _, v := range s.Holdings {
		holdings = append(holdings, NewHoldingRes(v))
	}
	return PortfolioRes{
		InvestedValue: s.InvestedValue,
		CurrentValue:  s.CurrentValue,
		PnL:           s.PnL,
		Holdings:      holdings,
	}
}
