package db

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestBuildDSN はキーワード形式のDSN文字列が正しく生成されることを検証します。
func TestBuildDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{
			name:     "explicit sslmode",
			cfg:      Config{User: "testuser", Password: "testpass", Name: "testdb", Host: "db", Port: "5432", SSLMode: "require"},
			expected: "host=db port=5432 user=testuser password=testpass dbname=testdb sslmode=require TimeZone=UTC",
		},
		{
			name:     "default sslmode",
			cfg:      Config{User: "u", Password: "p", Name: "n", Host: "localhost", Port: "5433"},
			expected: "host=localhost port=5433 user=u password=p dbname=n sslmode=disable TimeZone=UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, BuildDSN(tt.cfg))
		})
	}
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 1, attempts)
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// Not parallel because this test takes time due to retry sleeps

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 10*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 3, attempts)
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後にエラーが返されることを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	attempts := 0
	boom := errors.New("connection refused")
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return nil, boom
	}

	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, opener)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

// TestLoadConfigFromEnv は環境変数からデータベース設定が正しく読み込まれることを検証します。
func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_USER", "envuser")
	t.Setenv("DB_PASSWORD", "envpass")
	t.Setenv("DB_NAME", "envdb")
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("DB_PORT", "5439")
	t.Setenv("DB_SSLMODE", "")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, Config{User: "envuser", Password: "envpass", Name: "envdb", Host: "envhost", Port: "5439", SSLMode: "disable"}, cfg)
}

// TestModels_AutoMigrate はすべてのモデルがマイグレーション可能であることを検証します。
func TestModels_AutoMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(Models()...))
	for _, table := range []string{"users", "valuations", "audit_logs"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestOpenDB_RequiresName(t *testing.T) {
	_, err := OpenDB(Config{})
	assert.Error(t, err)
}
