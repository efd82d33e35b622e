// Package entity defines the ledger entities of the trading feature.
package entity

import (
	"time"

	stockentity "brokerage_backend/internal/feature/stocks/domain/entity"
)

// Holding is a user's open position in one stock.
// At most one row exists per (user, stock) and Quantity is always > 0;
// a position sold down to zero is deleted.
type Holding struct {
	ID      uint `gorm:"primaryKey"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_holdings_user_stock,priority:1"`
	StockID uint `gorm:"not null;uniqueIndex:idx_holdings_user_stock,priority:2;index"`

	Quantity int64 `gorm:"not null"`
	// AveragePrice is the weighted cost basis; sells never change it.
	AveragePrice float64 `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoldingView is a holding together with its stock's reference data.
type HoldingView struct {
	Holding
	Stock stockentity.Stock
}

// PortfolioSummary values a user's holdings at current prices.
type PortfolioSummary struct {
	InvestedValue float64
	CurrentValue  float64
	PnL           float64
	Holdings      []HoldingView
}
