package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company_valuation/internal/feature/valuation/domain"
	"company_valuation/internal/feature/valuation/domain/entity"
)

// mockCacheStore はテスト用のCacheStoreモック実装です。
type mockCacheStore struct {
	getFn    func(ctx context.Context, companyNumber string) (*entity.AccountsCacheEntry, error)
	upsertFn func(ctx context.Context, companyNumber, periodEnd string, analysis *entity.AnalysisResult) error
	getCalls int
}

func (m *mockCacheStore) Get(ctx context.Context, companyNumber string) (*entity.AccountsCacheEntry, error) {
	m.getCalls++
	if m.getFn != nil {
		return m.getFn(ctx, companyNumber)
	}
	return nil, domain.ErrCacheEntryNotFound
}

func (m *mockCacheStore) Upsert(ctx context.Context, companyNumber, periodEnd string, analysis *entity.AnalysisResult) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, companyNumber, periodEnd, analysis)
	}
	return nil
}

var refillKeys = []string{"valuations:01234567", "valuations:01234567:period"}

func sampleEntry() *entity.AccountsCacheEntry {
	return &entity.AccountsCacheEntry{
		CompanyNumber:       "01234567",
		AccountingPeriodEnd: "2023-12-31",
		Analysis:            entity.AnalysisResult{ValuationLow: 1000, ValuationHigh: 2000, Confidence: entity.ConfidenceHigh, Currency: "GBP"},
		CreatedAt:           time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:           time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewCachingValuationStore_Defaults(t *testing.T) {
	t.Parallel()

	s := NewCachingValuationStore(nil, 0, &mockCacheStore{}, "")
	assert.Equal(t, DefaultValuationTTL, s.ttl)
	assert.Equal(t, "valuations", s.namespace)
}

func TestCachingValuationStore_Get_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockCacheStore{getFn: func(ctx context.Context, n string) (*entity.AccountsCacheEntry, error) {
		return sampleEntry(), nil
	}}
	s := NewCachingValuationStore(nil, time.Hour, inner, "valuations")

	got, err := s.Get(context.Background(), "01234567")
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", got.AccountingPeriodEnd)
	assert.Equal(t, 1, inner.getCalls)
}

func TestCachingValuationStore_Get_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	raw, _ := json.Marshal(sampleEntry())
	mock.ExpectGet("valuations:01234567").SetVal(string(raw))

	inner := &mockCacheStore{}
	s := NewCachingValuationStore(rdb, time.Hour, inner, "valuations")

	got, err := s.Get(context.Background(), "01234567")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, got.Analysis.ValuationHigh)
	assert.Equal(t, 0, inner.getCalls, "database should not be read on a Redis hit")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingValuationStore_Get_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	entry := sampleEntry()
	raw, _ := json.Marshal(entry)
	mock.ExpectGet("valuations:01234567").RedisNil()
	mock.ExpectEval(refillScript, refillKeys, raw, time.Hour.Milliseconds(), "2023-12-31").SetVal(int64(1))

	inner := &mockCacheStore{getFn: func(ctx context.Context, n string) (*entity.AccountsCacheEntry, error) {
		return entry, nil
	}}
	s := NewCachingValuationStore(rdb, time.Hour, inner, "valuations")

	got, err := s.Get(context.Background(), "01234567")
	require.NoError(t, err)
	assert.Equal(t, entry, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingValuationStore_Get_NotFoundIsNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("valuations:99999999").RedisNil()

	s := NewCachingValuationStore(rdb, time.Hour, &mockCacheStore{}, "valuations")

	_, err := s.Get(context.Background(), "99999999")
	assert.ErrorIs(t, err, domain.ErrCacheEntryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingValuationStore_Get_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	entry := sampleEntry()
	raw, _ := json.Marshal(entry)
	mock.ExpectGet("valuations:01234567").SetVal("not json")
	mock.ExpectDel("valuations:01234567").SetVal(1)
	mock.ExpectEval(refillScript, refillKeys, raw, time.Hour.Milliseconds(), "2023-12-31").SetVal(int64(1))

	inner := &mockCacheStore{getFn: func(ctx context.Context, n string) (*entity.AccountsCacheEntry, error) {
		return entry, nil
	}}
	s := NewCachingValuationStore(rdb, time.Hour, inner, "valuations")

	_, err := s.Get(context.Background(), "01234567")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingValuationStore_Upsert_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectSet("valuations:01234567:period", "2024-12-31", time.Hour).SetVal("OK")
	mock.ExpectDel("valuations:01234567").SetVal(1)

	var gotPeriod string
	inner := &mockCacheStore{upsertFn: func(ctx context.Context, n, p string, a *entity.AnalysisResult) error {
		gotPeriod = p
		return nil
	}}
	s := NewCachingValuationStore(rdb, time.Hour, inner, "valuations")

	err := s.Upsert(context.Background(), "01234567", "2024-12-31", &entity.AnalysisResult{})
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", gotPeriod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingValuationStore_Upsert_InnerErrorSkipsInvalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	boom := errors.New("write failed")
	inner := &mockCacheStore{upsertFn: func(ctx context.Context, n, p string, a *entity.AnalysisResult) error {
		return boom
	}}
	s := NewCachingValuationStore(rdb, time.Hour, inner, "valuations")

	err := s.Upsert(context.Background(), "01234567", "2024-12-31", &entity.AnalysisResult{})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A Get that read the row before a concurrent Upsert must not put the stale row back into Redis.
func TestCachingValuationStore_Get_StaleRefillAfterUpsert(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	stale := sampleEntry()
	raw, _ := json.Marshal(stale)
	mock.ExpectGet("valuations:01234567").RedisNil()
	// the marker already names the newer period, so the script declines the write
	mock.ExpectEval(refillScript, refillKeys, raw, time.Hour.Milliseconds(), "2023-12-31").SetVal(int64(0))
	mock.ExpectSet("valuations:01234567:period", "2024-12-31", time.Hour).SetVal("OK")
	mock.ExpectDel("valuations:01234567").SetVal(0)

	inner := &mockCacheStore{getFn: func(ctx context.Context, n string) (*entity.AccountsCacheEntry, error) {
		return stale, nil
	}}
	s := NewCachingValuationStore(rdb, time.Hour, inner, "valuations")

	got, err := s.Get(context.Background(), "01234567")
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", got.AccountingPeriodEnd, "the caller still sees what the database returned")
	require.NoError(t, s.Upsert(context.Background(), "01234567", "2024-12-31", &entity.AnalysisResult{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
