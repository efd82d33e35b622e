package di

import (
	"time"

	"brokerage_backend/internal/app/router"
	authadapters "brokerage_backend/internal/feature/auth/adapters"
	authhandler "brokerage_backend/internal/feature/auth/transport/handler"
	authusecase "brokerage_backend/internal/feature/auth/usecase"
	stockshandler "brokerage_backend/internal/feature/stocks/transport/handler"
	tradingadapters "brokerage_backend/internal/feature/trading/adapters"
	tradinghandler "brokerage_backend/internal/feature/trading/transport/handler"
	tradingusecase "brokerage_backend/internal/feature/trading/usecase"
	infrahttp "brokerage_backend/internal/platform/http"
	jwtmw "brokerage_backend/internal/platform/jwt"
	"brokerage_backend/internal/shared/ratelimiter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewTradingUsecase creates the settlement engine on top of the gorm ledger store.
// Settlement reads prices through the ledger transaction, never through the stock cache.
func NewTradingUsecase(db *gorm.DB) *tradingusecase.TradingUsecase {
	return tradingusecase.NewTradingUsecase(tradingadapters.NewLedgerStore(db))
}

// NewAuthUsecase creates the identity usecase with a token generator built from cfg.
func NewAuthUsecase(db *gorm.DB, cfg jwtmw.Config) (*authusecase.AuthUsecase, jwtmw.Verifier) {
	gen := jwtmw.NewGenerator(cfg.Secret, cfg.Expiration)
	return authusecase.NewAuthUsecase(authadapters.NewUserGorm(db), gen), gen
}

// NewEngine wires repositories, usecases and handlers into the HTTP router.
// rdb may be nil.
func NewEngine(db *gorm.DB, rdb *redis.Client, jwtCfg jwtmw.Config, httpCfg infrahttp.Config) *gin.Engine {
	// Usecase
	authUC, verifier := NewAuthUsecase(db, jwtCfg)
	stocksUC := NewStocksUsecase(rdb, db)
	tradingUC := NewTradingUsecase(db)

	// Handler
	h := router.Handlers{
		Auth:    authhandler.NewAuthHandler(authUC),
		Stocks:  stockshandler.NewStocksHandler(stocksUC),
		Trading: tradinghandler.NewTradingHandler(tradingUC),
	}

	limiter := ratelimiter.NewRateLimiter(ratelimiter.AuthLimitFromEnv(), time.Minute)
	return router.NewRouter(verifier, httpCfg.AllowOrigins, limiter, h)
}
