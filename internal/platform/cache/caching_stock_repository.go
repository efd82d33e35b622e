// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"brokerage_backend/internal/feature/stocks/domain/entity"
	"brokerage_backend/internal/feature/stocks/usecase"
)

// CachingStockRepository decorates a StockRepository with Redis caching.
// List and FindByID are read-through; every write drops the whole namespace
// so a price change is never served stale by this process.
type CachingStockRepository struct {
	inner     usecase.StockRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.StockRepository = (*CachingStockRepository)(nil)

// NewCachingStockRepository decorates a StockRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "stocks".
func NewCachingStockRepository(rdb *redis.Client, ttl time.Duration, inner usecase.StockRepository, namespace string) *CachingStockRepository {
	if ttl <= 0 {
		ttl = DefaultStockTTL
	}
	if namespace == "" {
		namespace = "stocks"
	}
	return &CachingStockRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List returns all stocks, checking the cache first.
func (c *CachingStockRepository) List(ctx context.Context) ([]entity.Stock, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}
	key := c.namespace + ":list"

	var out []entity.Stock
	if c.load(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, out)
	return out, nil
}

// FindByID returns one stock, checking the cache first. Misses are not cached.
func (c *CachingStockRepository) FindByID(ctx context.Context, id uint) (*entity.Stock, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}
	key := fmt.Sprintf("%s:id:%d", c.namespace, id)

	var cached entity.Stock
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	s, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, s)
	return s, nil
}

// FindBySymbol is not cached.
func (c *CachingStockRepository) FindBySymbol(ctx context.Context, symbol string) (*entity.Stock, error) {
	return c.inner.FindBySymbol(ctx, symbol)
}

// Create stores the stock and invalidates the namespace.
func (c *CachingStockRepository) Create(ctx context.Context, stock *entity.Stock) error {
	if err := c.inner.Create(ctx, stock); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// UpdateQuote writes the prices and invalidates the namespace.
func (c *CachingStockRepository) UpdateQuote(ctx context.Context, stock *entity.Stock) error {
	if err := c.inner.UpdateQuote(ctx, stock); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// load decodes key into dst. Corrupted entries are deleted.
func (c *CachingStockRepository) load(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// store writes v under key (best effort).
func (c *CachingStockRepository) store(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

func (c *CachingStockRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*") // Best effort: the write already committed
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingStockRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
