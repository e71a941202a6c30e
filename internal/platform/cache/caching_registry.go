package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"company_valuation/internal/feature/companies/domain/entity"
	"company_valuation/internal/feature/companies/usecase"
)

// CachingRegistry decorates a Companies House client with Redis caching.
// Entries expire at the next daily refresh. Filing history always goes to the
// registry so that the valuation cache key is computed from live data.
type CachingRegistry struct {
	inner     usecase.RegistryClient
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
}

var _ usecase.RegistryClient = (*CachingRegistry)(nil)

// NewCachingRegistry decorates inner with Redis caching.
// If ttl is nil, entries live until TimeUntilNextRefresh. If namespace is empty, it uses "registry".
func NewCachingRegistry(rdb *redis.Client, ttl func() time.Duration, inner usecase.RegistryClient, namespace string) *CachingRegistry {
	if ttl == nil {
		ttl = TimeUntilNextRefresh
	}
	if namespace == "" {
		namespace = "registry"
	}
	return &CachingRegistry{inner: inner, rdb: rdb, ttl: ttl, namespace: namespace}
}

func (c *CachingRegistry) SearchCompanies(ctx context.Context, query string) (*entity.CompanySearchResult, error) {
	return readThrough(ctx, c, c.key("search", normalizeQuery(query)), func() (*entity.CompanySearchResult, error) {
		return c.inner.SearchCompanies(ctx, query)
	})
}

func (c *CachingRegistry) GetCompanyProfile(ctx context.Context, companyNumber string) (*entity.CompanyProfile, error) {
	return readThrough(ctx, c, c.key("profile", companyNumber), func() (*entity.CompanyProfile, error) {
		return c.inner.GetCompanyProfile(ctx, companyNumber)
	})
}

func (c *CachingRegistry) GetCompanyOfficers(ctx context.Context, companyNumber string) (*entity.OfficerList, error) {
	return readThrough(ctx, c, c.key("officers", companyNumber), func() (*entity.OfficerList, error) {
		return c.inner.GetCompanyOfficers(ctx, companyNumber)
	})
}

// GetFilingHistory is never cached.
func (c *CachingRegistry) GetFilingHistory(ctx context.Context, companyNumber string) (*entity.FilingHistory, error) {
	return c.inner.GetFilingHistory(ctx, companyNumber)
}

func (c *CachingRegistry) SearchOfficers(ctx context.Context, query string) (*entity.OfficerSearchResult, error) {
	return readThrough(ctx, c, c.key("officer-search", normalizeQuery(query)), func() (*entity.OfficerSearchResult, error) {
		return c.inner.SearchOfficers(ctx, query)
	})
}

func (c *CachingRegistry) GetOfficerAppointments(ctx context.Context, officerID string) (*entity.OfficerAppointments, error) {
	return readThrough(ctx, c, c.key("appointments", officerID), func() (*entity.OfficerAppointments, error) {
		return c.inner.GetOfficerAppointments(ctx, officerID)
	})
}

func (c *CachingRegistry) key(kind, id string) string {
	return c.namespace + ":" + kind + ":" + safe(id)
}

// readThrough returns the cached value at key or loads and stores it.
// Redis failures degrade to a direct load; load errors are never cached.
func readThrough[T any](ctx context.Context, c *CachingRegistry, key string, load func() (*T, error)) (*T, error) {
	if c.rdb == nil {
		return load()
	}

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := load()
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl()).Err(); err != nil {
			slog.Warn("failed to cache registry response", "key", key, "error", err)
		}
	}
	return out, nil
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
