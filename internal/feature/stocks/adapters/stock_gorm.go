// Package adapters はstocksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"brokerage_backend/internal/feature/stocks/domain"
	"brokerage_backend/internal/feature/stocks/domain/entity"
	"brokerage_backend/internal/feature/stocks/usecase"
	"brokerage_backend/internal/platform/db"
)

type stockGorm struct {
	db *gorm.DB
}

var _ usecase.StockRepository = (*stockGorm)(nil)

// NewStockRepository はGORMベースのStockRepositoryを生成します。
func NewStockRepository(db *gorm.DB) *stockGorm {
	return &stockGorm{db: db}
}

func (r *stockGorm) List(ctx context.Context) ([]entity.Stock, error) {
	var out []entity.Stock
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *stockGorm) FindByID(ctx context.Context, id uint) (*entity.Stock, error) {
	var s entity.Stock
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStockNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *stockGorm) FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error) {
	var s entity.Stock
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStockNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *stockGorm) Create(ctx context.Context, s *entity.Stock) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return domain.ErrSymbolAlreadyExists
		}
		return err
	}
	return nil
}

// UpdateQuote は価格カラムのみ更新します。ゼロ値も書き込むためSelectで列を明示します。
func (r *stockGorm) UpdateQuote(ctx context.Context, s *entity.Stock) error {
	res := r.db.WithContext(ctx).Model(s).
		Select("current_price", "day_high", "day_low", "last_updated").
		Updates(s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStockNotFound
	}
	return nil
}
