package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokerage_backend/internal/api"
	"brokerage_backend/internal/feature/stocks/domain"
	"brokerage_backend/internal/feature/stocks/domain/entity"
	"brokerage_backend/internal/feature/stocks/transport/http/dto"
	"brokerage_backend/internal/feature/stocks/usecase"
)

type mockStocksUsecase struct {
	ListFunc        func(ctx context.Context) ([]entity.Stock, error)
	GetFunc         func(ctx context.Context, id uint) (*entity.Stock, error)
	GetBySymbolFunc func(ctx context.Context, symbol string) (*entity.Stock, error)
	CreateFunc      func(ctx context.Context, in usecase.StockInput) (*entity.Stock, error)
	UpdateQuoteFunc func(ctx context.Context, id uint, upd usecase.QuoteUpdate) (*entity.Stock, error)
}

func (m *mockStocksUsecase) List(ctx context.Context) ([]entity.Stock, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockStocksUsecase) Get(ctx context.Context, id uint) (*entity.Stock, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, domain.ErrStockNotFound
}

func (m *mockStocksUsecase) GetBySymbol(ctx context.Context, symbol string) (*entity.Stock, error) {
	if m.GetBySymbolFunc != nil {
		return m.GetBySymbolFunc(ctx, symbol)
	}
	return nil, domain.ErrStockNotFound
}

func (m *mockStocksUsecase) Create(ctx context.Context, in usecase.StockInput) (*entity.Stock, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return nil, errors.New("not implemented")
}

func (m *mockStocksUsecase) UpdateQuote(ctx context.Context, id uint, upd usecase.QuoteUpdate) (*entity.Stock, error) {
	if m.UpdateQuoteFunc != nil {
		return m.UpdateQuoteFunc(ctx, id, upd)
	}
	return nil, errors.New("not implemented")
}

func setupRouter(uc StocksUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewStocksHandler(uc)
	r := gin.New()
	r.GET("/trading/stocks", h.List)
	r.GET("/trading/stocks/:id", h.Get)
	r.POST("/trading/stocks", h.Create)
	r.PATCH("/trading/stocks/:id", h.UpdateQuote)
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStocksHandler_List(t *testing.T) {
	r := setupRouter(&mockStocksUsecase{
		ListFunc: func(ctx context.Context) ([]entity.Stock, error) {
			return []entity.Stock{
				{ID: 1, Symbol: "RELIANCE", CurrentPrice: 2500},
				{ID: 2, Symbol: "TCS", CurrentPrice: 3500},
			}, nil
		},
		GetBySymbolFunc: func(ctx context.Context, symbol string) (*entity.Stock, error) {
			if symbol == "TCS" {
				return &entity.Stock{ID: 2, Symbol: "TCS"}, nil
			}
			return nil, domain.ErrStockNotFound
		},
	})

	t.Run("all stocks", func(t *testing.T) {
		w := do(r, http.MethodGet, "/trading/stocks", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var out []dto.StockRes
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Len(t, out, 2)
		assert.Equal(t, 3500.0, out[1].CurrentPrice)
	})

	t.Run("filter by symbol", func(t *testing.T) {
		w := do(r, http.MethodGet, "/trading/stocks?symbol=TCS", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var out []dto.StockRes
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Len(t, out, 1)
		assert.Equal(t, uint(2), out[0].ID)
	})

	t.Run("unknown symbol gives empty list", func(t *testing.T) {
		w := do(r, http.MethodGet, "/trading/stocks?symbol=NOPE", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}

func TestStocksHandler_Get(t *testing.T) {
	r := setupRouter(&mockStocksUsecase{
		GetFunc: func(ctx context.Context, id uint) (*entity.Stock, error) {
			if id == 1 {
				return &entity.Stock{ID: 1, Symbol: "RELIANCE"}, nil
			}
			return nil, domain.ErrStockNotFound
		},
	})

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedCode   string
	}{
		{"found", "/trading/stocks/1", http.StatusOK, ""},
		{"not found", "/trading/stocks/99", http.StatusNotFound, api.CodeNotFound},
		{"bad id", "/trading/stocks/abc", http.StatusBadRequest, api.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				var res api.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
				assert.Equal(t, tt.expectedCode, res.Code)
			}
		})
	}
}

func TestStocksHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           gin.H
		createErr      error
		expectedStatus int
		expectedCode   string
	}{
		{"created", gin.H{"symbol": "infy", "name": "Infosys", "exchange": "NSE", "current_price": 1500}, nil, http.StatusCreated, ""},
		{"missing price", gin.H{"symbol": "INFY", "name": "Infosys", "exchange": "NSE"}, nil, http.StatusBadRequest, api.CodeValidation},
		{"duplicate", gin.H{"symbol": "TCS", "name": "TCS", "exchange": "NSE", "current_price": 1}, domain.ErrSymbolAlreadyExists, http.StatusBadRequest, api.CodeDuplicateSymbol},
		{"store failure", gin.H{"symbol": "X", "name": "X", "exchange": "NSE", "current_price": 1}, errors.New("db down"), http.StatusInternalServerError, api.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&mockStocksUsecase{
				CreateFunc: func(ctx context.Context, in usecase.StockInput) (*entity.Stock, error) {
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return &entity.Stock{ID: 7, Symbol: "INFY", CurrentPrice: in.CurrentPrice}, nil
				},
			})

			w := do(r, http.MethodPost, "/trading/stocks", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				var res api.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
				assert.Equal(t, tt.expectedCode, res.Code)
			}
		})
	}
}

func TestStocksHandler_UpdateQuote(t *testing.T) {
	var got usecase.QuoteUpdate
	r := setupRouter(&mockStocksUsecase{
		UpdateQuoteFunc: func(ctx context.Context, id uint, upd usecase.QuoteUpdate) (*entity.Stock, error) {
			got = upd
			return &entity.Stock{ID: id, CurrentPrice: *upd.CurrentPrice}, nil
		},
	})

	w := do(r, http.MethodPatch, "/trading/stocks/3", gin.H{"current_price": 2700})

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.CurrentPrice)
	assert.Equal(t, 2700.0, *got.CurrentPrice)
	assert.Nil(t, got.DayHigh)
}
