// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"brokerage_backend/internal/api"

	"github.com/gin-gonic/gin"
)

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "Welcome to the Brokerage API. See /healthz for service status."

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
func Health(c *gin.Context) {
	// プロキシ等でキャッシュさせない
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Root returns the welcome message.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, api.MessageResponse{Message: WelcomeMessage})
}
