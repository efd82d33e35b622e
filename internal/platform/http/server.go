// Package http は API サーバー本体の設定を提供します。
package http

import (
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	// EnvKeyAddr is the listen address of the API server.
	EnvKeyAddr = "HTTP_ADDR"
	// EnvKeyCORSOrigins is a comma separated list of allowed origins.
	EnvKeyCORSOrigins = "CORS_ALLOW_ORIGINS"

	defaultAddr = ":8080"
)

// Config holds listener settings.
type Config struct {
	Addr         string
	AllowOrigins []string
}

// LoadConfig reads HTTP_ADDR and CORS_ALLOW_ORIGINS.
// An empty origin list means every origin is allowed.
func LoadConfig() Config {
	cfg := Config{Addr: os.Getenv(EnvKeyAddr)}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	cfg.AllowOrigins = splitOrigins(os.Getenv(EnvKeyCORSOrigins))
	return cfg
}

func splitOrigins(v string) []string {
	var out []string
	for _, o := range strings.Split(v, ",") {
		o = strings.TrimSpace(o)
		if o == "" || o == "*" {
			continue
		}
		out = append(out, o)
	}
	return out
}

// NewServer は API 用の http.Server を作成します。
//
// http.Server のゼロ値はタイムアウトが無いので、各値を明示的に設定する:
//   - ReadHeaderTimeout: ヘッダー受信の上限（Slowloris 対策）
//   - ReadTimeout / WriteTimeout: リクエスト全体の上限
//   - IdleTimeout: keep-alive 接続の維持期間
func NewServer(cfg Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
}
