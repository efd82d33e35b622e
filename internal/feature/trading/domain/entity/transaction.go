package entity

import (
	"time"

	"github.com/google/uuid"

	stockentity "brokerage_backend/internal/feature/stocks/domain/entity"
	"brokerage_backend/internal/feature/trading/domain"
)

// Transaction is an append-only ledger entry. Rows are never updated or deleted.
type Transaction struct {
	ID        uint      `gorm:"primaryKey"`
	Reference uuid.UUID `gorm:"size:36;not null;uniqueIndex"`
	UserID    uint      `gorm:"not null;index:idx_transactions_user_time,priority:1"`
	StockID   uint      `gorm:"not null;index"`

	Side        domain.Side `gorm:"column:transaction_type;size:4;not null"`
	Quantity    int64       `gorm:"not null"`
	Price       float64     `gorm:"not null"`
	TotalAmount float64     `gorm:"not null"`

	Timestamp time.Time `gorm:"not null;index:idx_transactions_user_time,priority:2"`
}

// TransactionView is a ledger entry together with its stock's reference data.
type TransactionView struct {
	Transaction
	Stock stockentity.Stock
}
