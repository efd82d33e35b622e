// Package dto はstocksフィーチャーのHTTPトランスポート層のDTOを定義します。
package dto

import (
	"time"

	"brokerage_backend/internal/feature/stocks/domain/entity"
)

// CreateStockReq is the body of POST /trading/stocks.
type CreateStockReq struct {
	Symbol       string   `json:"symbol" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Exchange     string   `json:"exchange" binding:"required"`
	CurrentPrice *float64 `json:"current_price" binding:"required"`
	DayHigh      float64  `json:"day_high"`
	DayLow       float64  `json:"day_low"`
}

// UpdateQuoteReq is the body of PATCH /trading/stocks/:id.
type UpdateQuoteReq struct {
	CurrentPrice *float64 `json:"current_price"`
	DayHigh      *float64 `json:"day_high"`
	DayLow       *float64 `json:"day_low"`
}

// StockRes is the public view of a stock.
type StockRes struct {
	ID           uint      `json:"id"`
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	Exchange     string    `json:"exchange"`
	CurrentPrice float64   `json:"current_price"`
	DayHigh      float64   `json:"day_high"`
	DayLow       float64   `json:"day_low"`
	LastUpdated  time.Time `json:"last_updated"`
}

// NewStockRes converts a stock entity to its response form.
func NewStockRes(s *entity.Stock) StockRes {
	return StockRes{
		ID:           s.ID,
		Symbol:       s.Symbol,
		Name:         s.Name,
		Exchange:     s.Exchange,
		CurrentPrice: s.CurrentPrice,
		DayHigh:      s.DayHigh,
		DayLow:       s.DayLow,
		LastUpdated:  s.LastUpdated,
	}
}
