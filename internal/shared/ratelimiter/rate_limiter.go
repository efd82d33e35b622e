package ratelimiter

import (
	"os"
	"strconv"
	"sync"
	"time"
)

const (
	// EnvKeyAuthLimit is the number of credential requests allowed per client per minute.
	EnvKeyAuthLimit = "AUTH_RATE_LIMIT"

	defaultAuthLimit = 20
)

// Limiter は、キーごとの操作頻度を制限するインターフェースです。
type Limiter interface {
	Allow(key string) bool
}

type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter は固定ウィンドウ方式でキー（クライアントIPなど）ごとの呼び出し回数を制限します。
type RateLimiter struct {
	limit    int           // interval あたりの上限
	interval time.Duration // どの単位でリセットするか
	now      func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// NewRateLimiter は新しい RateLimiter のインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		now:      time.Now,
		windows:  make(map[string]*window),
	}
}

// AuthLimitFromEnv は AUTH_RATE_LIMIT を読み取ります。未設定・不正な値はデフォルト値。
func AuthLimitFromEnv() int {
	n, err := strconv.Atoi(os.Getenv(EnvKeyAuthLimit))
	if err != nil || n <= 0 {
		return defaultAuthLimit
	}
	return n
}

// Allow は key の呼び出しを1回数え、上限内なら true を返します。
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	// interval を過ぎたらカウントリセット
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		if len(rl.windows) > 0 && !ok {
			rl.sweep(now)
		}
		w = &window{lastReset: now}
		rl.windows[key] = w
	}

	w.count++
	return w.count <= rl.limit
}

// sweep は期限切れのウィンドウを削除します。
func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}
