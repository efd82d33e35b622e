package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"brokerage_backend/internal/api"
	"brokerage_backend/internal/shared/ratelimiter"
)

// RateLimit はクライアントIPごとにリクエストを制限し、超過時は 429 を返します。
func RateLimit(l ratelimiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.Allow(ip) {
			slog.Warn("rate limit exceeded", "remote_addr", ip, "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				api.NewError(api.CodeRateLimited, "too many requests"))
			return
		}
		c.Next()
	}
}
