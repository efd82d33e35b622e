// Package usecase は銘柄の参照データ操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"brokerage_backend/internal/feature/stocks/domain"
	"brokerage_backend/internal/feature/stocks/domain/entity"
)

// StockRepository は銘柄データの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type StockRepository interface {
	// List は全銘柄をID順で返します。
	List(ctx context.Context) ([]entity.Stock, error)
	// FindByID は銘柄を取得します。存在しない場合は domain.ErrStockNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.Stock, error)
	// FindBySymbol はシンボルで銘柄を取得します。
	FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error)
	// Create は新しい銘柄を保存します。シンボル重複時は domain.ErrSymbolAlreadyExists を返します。
	Create(ctx context.Context, stock *entity.Stock) error
	// UpdateQuote は価格フィールド（current_price, day_high, day_low）だけを書き込みます。
	UpdateQuote(ctx context.Context, stock *entity.Stock) error
}

// StockFinder はキャッシュを経由せずに銘柄を読み取ります。
// UpdateQuote の読み取り→書き込みはこちらを使います。
type StockFinder interface {
	FindByID(ctx context.Context, id uint) (*entity.Stock, error)
}

// StockInput は新規銘柄の入力です。
type StockInput struct {
	Symbol       string
	Name         string
	Exchange     string
	CurrentPrice float64
	DayHigh      float64
	DayLow       float64
}

// QuoteUpdate は価格の部分更新です。nilのフィールドは変更しません。
type QuoteUpdate struct {
	CurrentPrice *float64
	DayHigh      *float64
	DayLow       *float64
}

// stocksUsecase は銘柄参照データのユースケースを実装します。
type stocksUsecase struct {
	stocks StockRepository
	source StockFinder
}

// NewStocksUsecase はstocksUsecaseの新しいインスタンスを生成します。
// source が nil の場合は stocks から読み取ります。
func NewStocksUsecase(stocks StockRepository, source StockFinder) *stocksUsecase {
	if source == nil {
		source = stocks
	}
	return &stocksUsecase{stocks: stocks, source: source}
}

// List は全銘柄を返します。
func (u *stocksUsecase) List(ctx context.Context) ([]entity.Stock, error) {
	return u.stocks.List(ctx)
}

// Get はIDで銘柄を返します。
func (u *stocksUsecase) Get(ctx context.Context, id uint) (*entity.Stock, error) {
	return u.stocks.FindByID(ctx, id)
}

// GetBySymbol はシンボル（大文字小文字を区別しない）で銘柄を返します。
func (u *stocksUsecase) GetBySymbol(ctx context.Context, symbol string) (*entity.Stock, error) {
	return u.stocks.FindBySymbol(ctx, normalizeSymbol(symbol))
}

// Create は入力を検証し、新しい銘柄を登録します。
func (u *stocksUsecase) Create(ctx context.Context, in StockInput) (*entity.Stock, error) {
	s := &entity.Stock{
		Symbol:       normalizeSymbol(in.Symbol),
		Name:         strings.TrimSpace(in.Name),
		Exchange:     strings.ToUpper(strings.TrimSpace(in.Exchange)),
		CurrentPrice: in.CurrentPrice,
		DayHigh:      in.DayHigh,
		DayLow:       in.DayLow,
	}
	switch {
	case s.Symbol == "":
		return nil, fmt.Errorf("%w: symbol is required", domain.ErrValidation)
	case s.Name == "":
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	case s.Exchange == "":
		return nil, fmt.Errorf("%w: exchange is required", domain.ErrValidation)
	}
	if err := validatePrices(s); err != nil {
		return nil, err
	}
	if err := u.stocks.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateQuote は価格を部分更新し、更新後の銘柄を返します。
func (u *stocksUsecase) UpdateQuote(ctx context.Context, id uint, upd QuoteUpdate) (*entity.Stock, error) {
	s, err := u.source.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.CurrentPrice != nil {
		s.CurrentPrice = *upd.CurrentPrice
	}
	if upd.DayHigh != nil {
		s.DayHigh = *upd.DayHigh
	}
	if upd.DayLow != nil {
		s.DayLow = *upd.DayLow
	}
	if err := validatePrices(s); err != nil {
		return nil, err
	}
	if err := u.stocks.UpdateQuote(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// validatePrices は価格が有限かつ非負で、安値が高値を超えないことを確認します。
func validatePrices(s *entity.Stock) error {
	for name, p := range map[string]float64{
		"current_price": s.CurrentPrice,
		"day_high":      s.DayHigh,
		"day_low":       s.DayLow,
	} {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrValidation, name)
		}
	}
	if s.DayLow > s.DayHigh {
		return fmt.Errorf("%w: day_low must not exceed day_high", domain.ErrValidation)
	}
	return nil
}
