// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	"company_valuation/internal/platform/cache"
	"company_valuation/internal/platform/externalapi/companieshouse"
	infrahttp "company_valuation/internal/platform/http"
	"company_valuation/internal/shared/ratelimiter"
)

// NewCompaniesHouseClient creates a rate-limited Companies House client with its own HTTP client.
func NewCompaniesHouseClient(cfg companieshouse.Config) *companieshouse.Client {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit, cfg.RateInterval)
	return companieshouse.NewClient(cfg, httpClient, limiter)
}

// NewCachedRegistry wraps the client with Redis caching. A nil rdb disables caching.
func NewCachedRegistry(client *companieshouse.Client, rdb *redis.Client) *cache.CachingRegistry {
	return cache.NewCachingRegistry(rdb, cache.TimeUntilNextRefresh, client, "registry")
}
