// Package cache provides Redis read-through decorators for registry reads and valuation entries.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"company_valuation/internal/feature/valuation/domain/entity"
	"company_valuation/internal/feature/valuation/usecase"
)

// DefaultValuationTTL is the Redis lifetime of a cached valuation entry.
const DefaultValuationTTL = 24 * time.Hour

// refillScript sets KEYS[1] only when the period marker KEYS[2] is absent or equals ARGV[3].
// Upsert writes the marker before dropping the entry, so a Get that read the
// previous row from the database cannot put it back afterwards.
const refillScript = `
local m = redis.call('GET', KEYS[2])
if m and m ~= ARGV[3] then
  return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
return 1
`

// CachingValuationStore decorates a valuation CacheStore with Redis.
// The database stays authoritative; Redis only shortens the hit path.
type CachingValuationStore struct {
	inner     usecase.CacheStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.CacheStore = (*CachingValuationStore)(nil)

// NewCachingValuationStore decorates inner with Redis caching.
// If ttl is 0, it defaults to DefaultValuationTTL. If namespace is empty, it uses "valuations".
func NewCachingValuationStore(rdb *redis.Client, ttl time.Duration, inner usecase.CacheStore, namespace string) *CachingValuationStore {
	if ttl <= 0 {
		ttl = DefaultValuationTTL
	}
	if namespace == "" {
		namespace = "valuations"
	}
	return &CachingValuationStore{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Get returns the cache entry for companyNumber, checking Redis before the database.
// Missing entries are not cached.
func (c *CachingValuationStore) Get(ctx context.Context, companyNumber string) (*entity.AccountsCacheEntry, error) {
	if c.rdb == nil {
		return c.inner.Get(ctx, companyNumber)
	}

	key := c.cacheKey(companyNumber)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.AccountsCacheEntry
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.Get(ctx, companyNumber)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		keys := []string{key, c.periodKey(companyNumber)}
		if err := c.rdb.Eval(ctx, refillScript, keys, b, c.ttl.Milliseconds(), out.AccountingPeriodEnd).Err(); err != nil {
			slog.Warn("failed to cache valuation entry", "company_number", companyNumber, "error", err)
		}
	}
	return out, nil
}

// Upsert writes through to the database, records the new period marker and then drops the Redis copy.
func (c *CachingValuationStore) Upsert(ctx context.Context, companyNumber, accountingPeriodEnd string, analysis *entity.AnalysisResult) error {
	if err := c.inner.Upsert(ctx, companyNumber, accountingPeriodEnd, analysis); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Set(ctx, c.periodKey(companyNumber), accountingPeriodEnd, c.ttl).Err(); err != nil {
		slog.Warn("failed to record valuation period", "company_number", companyNumber, "error", err)
	}
	if err := c.rdb.Del(ctx, c.cacheKey(companyNumber)).Err(); err != nil {
		slog.Warn("failed to invalidate valuation entry", "company_number", companyNumber, "error", err)
	}
	return nil
}

func (c *CachingValuationStore) cacheKey(companyNumber string) string {
	return c.namespace + ":" + safe(companyNumber)
}

func (c *CachingValuationStore) periodKey(companyNumber string) string {
	return c.cacheKey(companyNumber) + ":period"
}
