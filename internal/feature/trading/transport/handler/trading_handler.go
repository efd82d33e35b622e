// Package handler はtradingフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"brokerage_backend/internal/api"
	stockdomain "brokerage_backend/internal/feature/stocks/domain"
	"brokerage_backend/internal/feature/trading/domain"
	"brokerage_backend/internal/feature/trading/domain/entity"
	"brokerage_backend/internal/feature/trading/transport/http/dto"
	"brokerage_backend/internal/feature/trading/usecase"
	jwtmw "brokerage_backend/internal/platform/jwt"
)

// TradingUsecase は約定と台帳参照のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type TradingUsecase interface {
	Settle(ctx context.Context, req usecase.TradeRequest) (*entity.TransactionView, error)
	Summarize(ctx context.Context, userID uint) (*entity.PortfolioSummary, error)
	ListHoldings(ctx context.Context, userID uint) ([]entity.HoldingView, error)
	ListTransactions(ctx context.Context, userID uint) ([]entity.TransactionView, error)
}

// TradingHandler は売買とポートフォリオのHTTPリクエストを処理します。
type TradingHandler struct {
	uc TradingUsecase
}

// NewTradingHandler はTradingHandlerの新しいインスタンスを生成します。
func NewTradingHandler(uc TradingUsecase) *TradingHandler {
	return &TradingHandler{uc: uc}
}

// Buy は POST /trading/buy を処理します。
func (h *TradingHandler) Buy(c *gin.Context) { h.trade(c, domain.SideBuy) }

// Sell は POST /trading/sell を処理します。
func (h *TradingHandler) Sell(c *gin.Context) { h.trade(c, domain.SideSell) }

func (h *TradingHandler) trade(c *gin.Context, side domain.Side) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.NewError(api.CodeUnauthenticated, "not authenticated"))
		return
	}
	var req dto.TradeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("trade validation failed", "error", err, "side", side, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeValidation, err.Error()))
		return
	}
	if req.TransactionType != "" {
		bodySide, err := domain.ParseSide(req.TransactionType)
		if err != nil {
			writeError(c, err)
			return
		}
		if bodySide != side {
			writeError(c, domain.ErrSideMismatch)
			return
		}
	}

	tx, err := h.uc.Settle(c.Request.Context(), usecase.TradeRequest{
		UserID:   userID,
		StockID:  req.StockID,
		Side:     side,
		Quantity: req.Quantity,
		Price:    *req.Price,
	})
	if err != nil {
		slog.Warn("trade rejected", "error", err, "user_id", userID, "stock_id", req.StockID, "side", side, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("trade settled",
		"user_id", userID, "stock_id", tx.StockID, "side", tx.Side,
		"quantity", tx.Quantity, "price", tx.Price, "reference", tx.Reference)
	c.JSON(http.StatusOK, dto.NewTransactionViewRes(*tx))
}

// Portfolio は GET /trading/portfolio を処理します。
func (h *TradingHandler) Portfolio(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.NewError(api.CodeUnauthenticated, "not authenticated"))
		return
	}
	sum, err := h.uc.Summarize(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPortfolioRes(sum))
}

// Holdings は GET /trading/holdings を処理します。
func (h *TradingHandler) Holdings(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.NewError(api.CodeUnauthenticated, "not authenticated"))
		return
	}
	views, err := h.uc.ListHoldings(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.HoldingRes, 0, len(views))
	for _, v := range views {
		out = append(out, dto.NewHoldingRes(v))
	}
	c.JSON(http.StatusOK, out)
}

// Transactions は GET /trading/transactions を処理します。
func (h *TradingHandler) Transactions(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.NewError(api.CodeUnauthenticated, "not authenticated"))
		return
	}
	views, err := h.uc.ListTransactions(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.TransactionRes, 0, len(views))
	for _, v := range views {
		out = append(out, dto.NewTransactionViewRes(v))
	}
	c.JSON(http.StatusOK, out)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeValidation, err.Error()))
	case errors.Is(err, stockdomain.ErrStockNotFound):
		c.JSON(http.StatusNotFound, api.NewError(api.CodeNotFound, "stock not found"))
	case errors.Is(err, domain.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeInsufficientFunds, err.Error()))
	case errors.Is(err, domain.ErrInsufficientShares):
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeInsufficientShares, err.Error()))
	case errors.Is(err, domain.ErrNoPosition):
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeNoPosition, err.Error()))
	case errors.Is(err, domain.ErrAccountNotFound):
		c.JSON(http.StatusUnauthorized, api.NewError(api.CodeUnauthenticated, "could not validate credentials"))
	default:
		slog.Error("unexpected trading failure", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, api.Internal())
	}
}
