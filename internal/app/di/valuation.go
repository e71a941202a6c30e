package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	valuationadapters "company_valuation/internal/feature/valuation/adapters"
	"company_valuation/internal/feature/valuation/usecase"
	"company_valuation/internal/platform/cache"
)

// NewValuationStore returns the database-backed valuation cache, fronted by Redis when available.
func NewValuationStore(db *gorm.DB, rdb *redis.Client) usecase.CacheStore {
	repo := valuationadapters.NewValuationCacheRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingValuationStore(rdb, cache.DefaultValuationTTL, repo, "valuations")
}
