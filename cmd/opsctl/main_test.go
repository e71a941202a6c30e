package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "company_valuation/internal/feature/auth/adapters"
	"company_valuation/internal/feature/auth/domain"
	"company_valuation/internal/feature/auth/domain/entity"
	valuationadapters "company_valuation/internal/feature/valuation/adapters"
	valuationentity "company_valuation/internal/feature/valuation/domain/entity"
	infradb "company_valuation/internal/platform/db"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(infradb.Models()...))
	return db
}

func TestRun_PromoteAndDemote(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	users := authadapters.NewUserRepository(db)
	require.NoError(t, users.Create(ctx, &entity.User{Email: "ops@example.com", Password: "x"}))

	require.NoError(t, run(ctx, db, "promote", []string{"-email", " OPS@example.com "}, &bytes.Buffer{}))
	u, err := users.FindByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	require.NoError(t, run(ctx, db, "demote", []string{"-email", "ops@example.com"}, &bytes.Buffer{}))
	u, err = users.FindByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMember, u.Role)
}

func TestRun_PromoteErrors(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	err := run(ctx, db, "promote", nil, &bytes.Buffer{})
	assert.EqualError(t, err, "-email is required")

	err = run(ctx, db, "promote", []string{"-email", "nobody@example.com"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRun_CacheLatest(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	v := 1200.0
	require.NoError(t, valuationadapters.NewValuationCacheRepository(db).
		Upsert(ctx, "12345678", "2024-03-31", &valuationentity.AnalysisResult{NetAssets: &v}))

	var out bytes.Buffer
	require.NoError(t, run(ctx, db, "cache-latest", nil, &out))
	assert.Contains(t, out.String(), `"CompanyNumber": "12345678"`)
	assert.Contains(t, out.String(), `"netAssets": 1200`)
}

func TestRun_UnknownCommand(t *testing.T) {
	err := run(context.Background(), setupTestDB(t), "explode", nil, &bytes.Buffer{})
	assert.EqualError(t, err, usage)
}
