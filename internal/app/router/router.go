package router

import (
	authhandler "brokerage_backend/internal/feature/auth/transport/handler"
	stockshandler "brokerage_backend/internal/feature/stocks/transport/handler"
	tradinghandler "brokerage_backend/internal/feature/trading/transport/handler"
	"brokerage_backend/internal/platform/http/handler"
	"brokerage_backend/internal/platform/http/middleware"
	jwtmw "brokerage_backend/internal/platform/jwt"
	"brokerage_backend/internal/shared/ratelimiter"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the feature handlers mounted by NewRouter.
type Handlers struct {
	Auth    *authhandler.AuthHandler
	Stocks  *stockshandler.StocksHandler
	Trading *tradinghandler.TradingHandler
}

// NewRouter mounts every route. authLimiter throttles /register and /token per client; nil disables it.
func NewRouter(verifier jwtmw.Verifier, allowOrigins []string, authLimiter ratelimiter.Limiter, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(), middleware.CORS(allowOrigins))

	// 認証不要
	r.GET("/", handler.Root)
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)

	// 資格情報を受け取るルートはクライアントごとに回数制限
	credentials := r.Group("/")
	if authLimiter != nil {
		credentials.Use(middleware.RateLimit(authLimiter))
	}
	{
		// 新規ユーザー登録
		credentials.POST("/register", h.Auth.Register)
		// ログイン（JWT 発行）
		credentials.POST("/token", h.Auth.Token)
	}

	// 銘柄の参照は公開
	r.GET("/trading/stocks", h.Stocks.List)
	r.GET("/trading/stocks/:id", h.Stocks.Get)

	// 認証必須のルート
	// トークン検証の後、ユーザーが存在し有効であることを確認する
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(verifier), h.Auth.ActiveUser())
	{
		auth.GET("/users/me", h.Auth.Me)
		auth.PUT("/users/me", h.Auth.UpdateMe)
		auth.POST("/users/funds", h.Auth.AddFunds)

		auth.POST("/trading/stocks", h.Stocks.Create)
		auth.PATCH("/trading/stocks/:id", h.Stocks.UpdateQuote)

		auth.POST("/trading/buy", h.Trading.Buy)
		auth.POST("/trading/sell", h.Trading.Sell)
		auth.GET("/trading/portfolio", h.Trading.Portfolio)
		auth.GET("/trading/holdings", h.Trading.Holdings)
		auth.GET("/trading/transactions", h.Trading.Transactions)
	}

	return r
}
