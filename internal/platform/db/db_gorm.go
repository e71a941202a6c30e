// Package db はPostgreSQLへのGORM接続とスキーマ管理を提供します。
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	auditadapters "company_valuation/internal/feature/audit/adapters"
	"company_valuation/internal/feature/auth/domain/entity"
	valuationadapters "company_valuation/internal/feature/valuation/adapters"
)

const (
	// DefaultConnectTimeout は起動時の接続リトライを打ち切るまでの時間です。
	DefaultConnectTimeout = 60 * time.Second
	retryInterval         = 3 * time.Second
)

// Config はデータベース接続設定です。
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

// BuildDSN はPostgreSQLのキーワード形式DSNを組み立てます。pgxとlib/pq形式の両方で解釈できます。
func BuildDSN(cfg Config) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode)
}

// Opener はDSNからgorm.DBを開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// PostgresOpener は重複キーなどのドライバーエラーをgormのエラーに変換する設定で接続します。
func PostgresOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

// ConnectWithRetry はtimeoutに達するまで一定間隔で接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Models はAutoMigrateの対象となるテーブル定義です。
func Models() []any {
	return []any{
		&entity.User{},
		&valuationadapters.ValuationModel{},
		&auditadapters.AuditLogModel{},
	}
}

// OpenDB は接続を確立し、RUN_MIGRATIONS=true の場合はAutoMigrateを実行します。
// 本番のスキーマ変更は cmd/migrate のgooseマイグレーションで行います。
func OpenDB(cfg Config) (*gorm.DB, error) {
	if cfg.Name == "" {
		return nil, errors.New("DB_NAME is not set")
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), DefaultConnectTimeout, PostgresOpener)
	if err != nil {
		return nil, err
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(Models()...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		slog.Info("auto migration completed")
	}

	return db, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
