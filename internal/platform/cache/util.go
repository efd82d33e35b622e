package cache

import (
	"log/slog"
	"os"
	"time"
)

const (
	// EnvKeyStockTTL overrides the stock cache lifetime (Go duration syntax).
	EnvKeyStockTTL = "STOCK_CACHE_TTL"
	// DefaultStockTTL keeps quotes at most a minute old.
	DefaultStockTTL = time.Minute
)

// StockTTLFromEnv は STOCK_CACHE_TTL を読み取り、未設定または不正な場合はデフォルト値を返します。
func StockTTLFromEnv() time.Duration {
	raw := os.Getenv(EnvKeyStockTTL)
	if raw == "" {
		return DefaultStockTTL
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("invalid stock cache ttl, using default", "value", raw, "default", DefaultStockTTL)
		return DefaultStockTTL
	}
	return d
}
