// Package usecase は約定処理（残高・保有・取引台帳の一括更新）とポートフォリオ集計を実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	stockentity "brokerage_backend/internal/feature/stocks/domain/entity"
	"brokerage_backend/internal/feature/trading/domain"
	"brokerage_backend/internal/feature/trading/domain/entity"
)

// LedgerStore は口座台帳ストアを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type LedgerStore interface {
	// WithinTx は fn を1つのトランザクションで実行します。
	// fn がエラーを返した場合はロールバックし、そのエラーを返します。
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error

	// ListHoldings はユーザーの保有を stock_id 昇順で返します。
	ListHoldings(ctx context.Context, userID uint) ([]entity.Holding, error)
	// ListTransactions はユーザーの取引を timestamp, id 昇順で返します。
	ListTransactions(ctx context.Context, userID uint) ([]entity.Transaction, error)
	// FindStocks は指定IDの銘柄を返します。存在しないIDは結果に含まれません。
	FindStocks(ctx context.Context, ids []uint) (map[uint]stockentity.Stock, error)
}

// LedgerTx is the transactional handle passed to WithinTx. It is bound to the
// context given to WithinTx and must not be used after fn returns.
type LedgerTx interface {
	// LockAccount locks the user row and returns its balance (domain.ErrAccountNotFound if absent).
	LockAccount(userID uint) (float64, error)
	// FindStock returns the stock (stocks domain.ErrStockNotFound if absent).
	FindStock(stockID uint) (*stockentity.Stock, error)
	// LockHolding locks and returns the (user, stock) holding, or domain.ErrHoldingNotFound.
	LockHolding(userID, stockID uint) (*entity.Holding, error)

	SetBalance(userID uint, balance float64) error
	// SaveHolding inserts h when h.ID is zero, otherwise updates it.
	SaveHolding(h *entity.Holding) error
	DeleteHolding(id uint) error
	AppendTransaction(t *entity.Transaction) error
}

// TradeRequest is a verified user's intent to trade.
type TradeRequest struct {
	UserID   uint
	StockID  uint
	Side     domain.Side
	Quantity int64
	Price    float64
}

// TradingUsecase は約定エンジンとポートフォリオ集計を提供します。
type TradingUsecase struct {
	ledger LedgerStore
	locks  *userLocker
	now    func() time.Time
	newRef func() uuid.UUID
}

// NewTradingUsecase はTradingUsecaseの新しいインスタンスを生成します。
func NewTradingUsecase(ledger LedgerStore) *TradingUsecase {
	return &TradingUsecase{
		ledger: ledger,
		locks:  newUserLocker(),
		now:    func() time.Time { return time.Now().UTC() },
		newRef: uuid.New,
	}
}

// Buy は買い注文を約定します。
func (u *TradingUsecase) Buy(ctx context.Context, userID, stockID uint, quantity int64, price float64) (*entity.TransactionView, error) {
	return u.Settle(ctx, TradeRequest{UserID: userID, StockID: stockID, Side: domain.SideBuy, Quantity: quantity, Price: price})
}

// Sell は売り注文を約定します。
func (u *TradingUsecase) Sell(ctx context.Context, userID, stockID uint, quantity int64, price float64) (*entity.TransactionView, error) {
	return u.Settle(ctx, TradeRequest{UserID: userID, StockID: stockID, Side: domain.SideSell, Quantity: quantity, Price: price})
}

// Settle は残高・保有・取引台帳を1つのトランザクションで更新します。
// 入力検証はストアに触れる前に行い、同一ユーザーの約定は直列化されます。
// いずれかの手順が失敗した場合、何も反映されません。
// 戻り値には約定した銘柄が含まれます。
func (u *TradingUsecase) Settle(ctx context.Context, req TradeRequest) (*entity.TransactionView, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	unlock := u.locks.lock(req.UserID)
	defer unlock()

	var out *entity.TransactionView
	err := u.ledger.WithinTx(ctx, func(tx LedgerTx) error {
		balance, err := tx.LockAccount(req.UserID)
		if err != nil {
			return err
		}
		stock, err := tx.FindStock(req.StockID)
		if err != nil {
			return err
		}

		price := decimal.NewFromFloat(req.Price)
		qty := decimal.NewFromInt(req.Quantity)
		total := price.Mul(qty)

		var newBalance decimal.Decimal
		switch req.Side {
		case domain.SideBuy:
			newBalance, err = applyBuy(tx, req, decimal.NewFromFloat(balance), price, total)
		case domain.SideSell:
			newBalance, err = applySell(tx, req, decimal.NewFromFloat(balance), total)
		default:
			return domain.ErrInvalidSide
		}
		if err != nil {
			return err
		}

		if err := tx.SetBalance(req.UserID, newBalance.InexactFloat64()); err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}

		t := &entity.Transaction{
			Reference:   u.newRef(),
			UserID:      req.UserID,
			StockID:     req.StockID,
			Side:        req.Side,
			Quantity:    req.Quantity,
			Price:       req.Price,
			TotalAmount: total.InexactFloat64(),
			Timestamp:   u.now(),
		}
		if err := tx.AppendTransaction(t); err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}
		out = &entity.TransactionView{Transaction: *t, Stock: *stock}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applyBuy debits the cash and opens or grows the holding at the new weighted average.
func applyBuy(tx LedgerTx, req TradeRequest, balance, price, total decimal.Decimal) (decimal.Decimal, error) {
	if balance.LessThan(total) {
		return decimal.Decimal{}, domain.ErrInsufficientFunds
	}

	h, err := tx.LockHolding(req.UserID, req.StockID)
	switch {
	case errors.Is(err, domain.ErrHoldingNotFound):
		h = &entity.Holding{
			UserID:       req.UserID,
			StockID:      req.StockID,
			Quantity:     req.Quantity,
			AveragePrice: req.Price,
		}
	case err != nil:
		return decimal.Decimal{}, err
	default:
		if req.Quantity > math.MaxInt64-h.Quantity {
			return decimal.Decimal{}, domain.ErrPositionTooLarge
		}
		oldQty := decimal.NewFromInt(h.Quantity)
		cost := decimal.NewFromFloat(h.AveragePrice).Mul(oldQty).Add(total)
		newQty := h.Quantity + req.Quantity
		h.AveragePrice = cost.Div(decimal.NewFromInt(newQty)).InexactFloat64()
		h.Quantity = newQty
	}
	if err := tx.SaveHolding(h); err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to save holding: %w", err)
	}
	return balance.Sub(total), nil
}

// applySell credits the cash and shrinks the holding, deleting it at zero.
// The average price of the remaining shares is left unchanged.
func applySell(tx LedgerTx, req TradeRequest, balance, total decimal.Decimal) (decimal.Decimal, error) {
	h, err := tx.LockHolding(req.UserID, req.StockID)
	if errors.Is(err, domain.ErrHoldingNotFound) {
		return decimal.Decimal{}, domain.ErrNoPosition
	}
	if err != nil {
		return decimal.Decimal{}, err
	}
	if h.Quantity < req.Quantity {
		return decimal.Decimal{}, domain.ErrInsufficientShares
	}

	h.Quantity -= req.Quantity
	if h.Quantity == 0 {
		err = tx.DeleteHolding(h.ID)
	} else {
		err = tx.SaveHolding(h)
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to update holding: %w", err)
	}
	return balance.Add(total), nil
}

func validate(req TradeRequest) error {
	if req.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if req.Price < 0 || math.IsNaN(req.Price) || math.IsInf(req.Price, 0) {
		return domain.ErrInvalidPrice
	}
	switch req.Side {
	case domain.SideBuy, domain.SideSell:
		return nil
	default:
		return domain.ErrInvalidSide
	}
}
