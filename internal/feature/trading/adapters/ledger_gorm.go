// Package adapters はtradingフィーチャーの台帳ストア実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authentity "brokerage_backend/internal/feature/auth/domain/entity"
	stockdomain "brokerage_backend/internal/feature/stocks/domain"
	stockentity "brokerage_backend/internal/feature/stocks/domain/entity"
	"brokerage_backend/internal/feature/trading/domain"
	"brokerage_backend/internal/feature/trading/domain/entity"
	"brokerage_backend/internal/feature/trading/usecase"
)

// ledgerGorm はLedgerStoreインターフェースのGORM実装です。
type ledgerGorm struct {
	db *gorm.DB
}

var _ usecase.LedgerStore = (*ledgerGorm)(nil)

// NewLedgerStore はGORMベースのLedgerStoreを生成します。
func NewLedgerStore(db *gorm.DB) *ledgerGorm {
	return &ledgerGorm{db: db}
}

// WithinTx は fn を gorm のトランザクション内で実行します。fn がエラーを返すとロールバックされます。
func (s *ledgerGorm) WithinTx(ctx context.Context, fn func(tx usecase.LedgerTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerTx{tx: tx})
	})
}

func (s *ledgerGorm) ListHoldings(ctx context.Context, userID uint) ([]entity.Holding, error) {
	var out []entity.Holding
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("stock_id ASC").
		Find(&out).Error
	return out, err
}

func (s *ledgerGorm) ListTransactions(ctx context.Context, userID uint) ([]entity.Transaction, error) {
	var out []entity.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}}).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (s *ledgerGorm) FindStocks(ctx context.Context, ids []uint) (map[uint]stockentity.Stock, error) {
	out := make(map[uint]stockentity.Stock, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []stockentity.Stock
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ID] = r
	}
	return out, nil
}

// ledgerTx implements usecase.LedgerTx on an open gorm transaction.
type ledgerTx struct {
	tx *gorm.DB
}

// forUpdate adds SELECT ... FOR UPDATE. sqlite has no row locks; its writer lock
// already serialises the transaction.
func (t *ledgerTx) forUpdate() *gorm.DB {
	if t.tx.Dialector.Name() == "sqlite" {
		return t.tx
	}
	return t.tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (t *ledgerTx) LockAccount(userID uint) (float64, error) {
	var u authentity.User
	err := t.forUpdate().Select("id", "balance").Where("id = ?", userID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.ErrAccountNotFound
	}
	if err != nil {
		return 0, err
	}
	return u.Balance, nil
}

func (t *ledgerTx) FindStock(stockID uint) (*stockentity.Stock, error) {
	var s stockentity.Stock
	err := t.tx.Where("id = ?", stockID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, stockdomain.ErrStockNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (t *ledgerTx) LockHolding(userID, stockID uint) (*entity.Holding, error) {
	var h entity.Holding
	err := t.forUpdate().Where("user_id = ? AND stock_id = ?", userID, stockID).First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrHoldingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (t *ledgerTx) SetBalance(userID uint, balance float64) error {
	res := t.tx.Model(&authentity.User{}).Where("id = ?", userID).Update("balance", balance)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (t *ledgerTx) SaveHolding(h *entity.Holding) error {
	if h.ID == 0 {
		return t.tx.Create(h).Error
	}
	return t.tx.Save(h).Error
}

func (t *ledgerTx) DeleteHolding(id uint) error {
	return t.tx.Delete(&entity.Holding{}, id).Error
}

func (t *ledgerTx) AppendTransaction(tr *entity.Transaction) error {
	return t.tx.Create(tr).Error
}
