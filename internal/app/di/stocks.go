// Package di provides dependency injection factories for creating application components.
package di

import (
	stocksadapters "brokerage_backend/internal/feature/stocks/adapters"
	stockshandler "brokerage_backend/internal/feature/stocks/transport/handler"
	stocksusecase "brokerage_backend/internal/feature/stocks/usecase"
	"brokerage_backend/internal/platform/cache"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewStockRepository creates the StockRepository used by the public stock endpoints.
// If Redis is available, reads go through the Redis cache.
// Otherwise, it returns the database repository as is.
func NewStockRepository(rdb *redis.Client, db *gorm.DB) stocksusecase.StockRepository {
	repo := stocksadapters.NewStockRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingStockRepository(rdb, cache.StockTTLFromEnv(), repo, "stocks")
}

// NewStocksUsecase creates the stocks usecase. Quote updates read the database
// repository directly so a cached row is never written back.
func NewStocksUsecase(rdb *redis.Client, db *gorm.DB) stockshandler.StocksUsecase {
	return stocksusecase.NewStocksUsecase(NewStockRepository(rdb, db), stocksadapters.NewStockRepository(db))
}
