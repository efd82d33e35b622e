// Package handler はstocksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"brokerage_backend/internal/api"
	"brokerage_backend/internal/feature/stocks/domain"
	"brokerage_backend/internal/feature/stocks/domain/entity"
	"brokerage_backend/internal/feature/stocks/transport/http/dto"
	"brokerage_backend/internal/feature/stocks/usecase"
)

// StocksUsecase は銘柄参照データのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StocksUsecase interface {
	List(ctx context.Context) ([]entity.Stock, error)
	Get(ctx context.Context, id uint) (*entity.Stock, error)
	GetBySymbol(ctx context.Context, symbol string) (*entity.Stock, error)
	Create(ctx context.Context, in usecase.StockInput) (*entity.Stock, error)
	UpdateQuote(ctx context.Context, id uint, upd usecase.QuoteUpdate) (*entity.Stock, error)
}

// StocksHandler は銘柄のHTTPリクエストを処理します。
type StocksHandler struct {
	uc StocksUsecase
}

// NewStocksHandler はStocksHandlerの新しいインスタンスを生成します。
func NewStocksHandler(uc StocksUsecase) *StocksHandler {
	return &StocksHandler{uc: uc}
}

// List は銘柄一覧を返します。
//
// エンドポイント例:
// GET /trading/stocks
// GET /trading/stocks?symbol=RELIANCE
func (h *StocksHandler) List(c *gin.Context) {
	if symbol := c.Query("symbol"); symbol != "" {
		s, err := h.uc.GetBySymbol(c.Request.Context(), symbol)
		if errors.Is(err, domain.ErrStockNotFound) {
			c.JSON(http.StatusOK, []dto.StockRes{})
			return
		}
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, []dto.StockRes{dto.NewStockRes(s)})
		return
	}

	stocks, err := h.uc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.StockRes, 0, len(stocks))
	for i := range stocks {
		out = append(out, dto.NewStockRes(&stocks[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get は1銘柄を返します。
func (h *StocksHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	s, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStockRes(s))
}

// Create は銘柄を登録します。
func (h *StocksHandler) Create(c *gin.Context) {
	var req dto.CreateStockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create stock validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeValidation, err.Error()))
		return
	}
	s, err := h.uc.Create(c.Request.Context(), usecase.StockInput{
		Symbol:       req.Symbol,
		Name:         req.Name,
		Exchange:     req.Exchange,
		CurrentPrice: *req.CurrentPrice,
		DayHigh:      req.DayHigh,
		DayLow:       req.DayLow,
	})
	if err != nil {
		slog.Warn("create stock failed", "error", err, "symbol", req.Symbol, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("stock created", "stock_id", s.ID, "symbol", s.Symbol)
	c.JSON(http.StatusCreated, dto.NewStockRes(s))
}

// UpdateQuote は価格を部分更新します。
func (h *StocksHandler) UpdateQuote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeValidation, err.Error()))
		return
	}
	s, err := h.uc.UpdateQuote(c.Request.Context(), id, usecase.QuoteUpdate{
		CurrentPrice: req.CurrentPrice,
		DayHigh:      req.DayHigh,
		DayLow:       req.DayLow,
	})
	if err != nil {
		slog.Warn("update quote failed", "error", err, "stock_id", id, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("quote updated", "stock_id", id, "current_price", s.CurrentPrice)
	c.JSON(http.StatusOK, dto.NewStockRes(s))
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeValidation, "invalid stock id"))
		return 0, false
	}
	return uint(id), true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeValidation, err.Error()))
	case errors.Is(err, domain.ErrStockNotFound):
		c.JSON(http.StatusNotFound, api.NewError(api.CodeNotFound, err.Error()))
	case errors.Is(err, domain.ErrSymbolAlreadyExists):
		c.JSON(http.StatusBadRequest, api.NewError(api.CodeDuplicateSymbol, err.Error()))
	default:
		slog.Error("unexpected stocks failure", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, api.Internal())
	}
}
