package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"company_valuation/internal/feature/valuation/domain"
	"company_valuation/internal/feature/valuation/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&ValuationModel{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func ptr(v float64) *float64 { return &v }

func TestValuationCache_GetMissing(t *testing.T) {
	t.Parallel()

	repo := NewValuationCacheRepository(setupTestDB(t))

	_, err := repo.Get(context.Background(), "A1")
	assert.ErrorIs(t, err, domain.ErrCacheEntryNotFound)
}

func TestValuationCache_UpsertAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewValuationCacheRepository(db)

	first := &entity.AnalysisResult{NetAssets: ptr(1000), ValuationLow: 5000, ValuationHigh: 8000, Confidence: entity.ConfidenceMedium}
	require.NoError(t, repo.Upsert(ctx, "A1", "2023-06-30", first))

	got, err := repo.Get(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", got.CompanyNumber)
	assert.Equal(t, "2023-06-30", got.AccountingPeriodEnd)
	assert.Equal(t, *first, got.Analysis)

	second := &entity.AnalysisResult{NetAssets: ptr(2000), ValuationLow: 9000, ValuationHigh: 12000, KeyHighlights: []string{"growth"}}
	require.NoError(t, repo.Upsert(ctx, "A1", "2024-06-30", second))

	got, err = repo.Get(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-30", got.AccountingPeriodEnd)
	assert.Equal(t, 9000.0, got.Analysis.ValuationLow)
	assert.Equal(t, []string{"growth"}, got.Analysis.KeyHighlights)

	var count int64
	require.NoError(t, db.Model(&ValuationModel{}).Where("company_number = ?", "A1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestValuationCache_GetCorruptedRow(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	require.NoError(t, db.Create(&ValuationModel{
		CompanyNumber:       "A1",
		AccountingPeriodEnd: "2023-06-30",
		Analysis:            datatypes.JSON(`"not an object"`),
	}).Error)

	_, err := NewValuationCacheRepository(db).Get(context.Background(), "A1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCacheEntryNotFound)
}

func TestValuationCache_Latest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewValuationCacheRepository(db)

	_, err := repo.Latest(ctx)
	assert.ErrorIs(t, err, domain.ErrCacheEntryNotFound)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&ValuationModel{
		CompanyNumber: "OLD", AccountingPeriodEnd: "2022-12-31", Analysis: datatypes.JSON(`{}`),
		CreatedAt: base, UpdatedAt: base,
	}).Error)
	require.NoError(t, db.Create(&ValuationModel{
		CompanyNumber: "NEW", AccountingPeriodEnd: "2023-12-31", Analysis: datatypes.JSON(`{"valuationLow": 1}`),
		CreatedAt: base, UpdatedAt: base.Add(time.Hour),
	}).Error)

	got, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NEW", got.CompanyNumber)
	assert.Equal(t, 1.0, got.Analysis.ValuationLow)
}
