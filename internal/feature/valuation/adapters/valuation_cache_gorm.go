package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"company_valuation/internal/feature/valuation/domain"
	"company_valuation/internal/feature/valuation/domain/entity"
	"company_valuation/internal/feature/valuation/usecase"
)

type valuationCacheGorm struct {
	db *gorm.DB
}

var _ usecase.CacheStore = (*valuationCacheGorm)(nil)

// NewValuationCacheRepository はGORMを使ったバリュエーションキャッシュを生成します。
func NewValuationCacheRepository(db *gorm.DB) *valuationCacheGorm {
	return &valuationCacheGorm{db: db}
}

// ValuationModel は企業ごとに1行のバリュエーションキャッシュです。
type ValuationModel struct {
	ID                  uint           `gorm:"primaryKey"`
	CompanyNumber       string         `gorm:"size:16;not null;uniqueIndex"`
	AccountingPeriodEnd string         `gorm:"size:10;not null"`
	Analysis            datatypes.JSON `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (ValuationModel) TableName() string {
	return "valuations"
}

func (r *valuationCacheGorm) Get(ctx context.Context, companyNumber string) (*entity.AccountsCacheEntry, error) {
	var m ValuationModel
	err := r.db.WithContext(ctx).Where("company_number = ?", companyNumber).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCacheEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	var analysis entity.AnalysisResult
	if err := json.Unmarshal(m.Analysis, &analysis); err != nil {
		return nil, fmt.Errorf("decode cached analysis for %s: %w", companyNumber, err)
	}
	return &entity.AccountsCacheEntry{
		CompanyNumber:       m.CompanyNumber,
		AccountingPeriodEnd: m.AccountingPeriodEnd,
		Analysis:            analysis,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}, nil
}

func (r *valuationCacheGorm) Upsert(ctx context.Context, companyNumber, accountingPeriodEnd string, analysis *entity.AnalysisResult) error {
	raw, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	m := ValuationModel{
		CompanyNumber:       companyNumber,
		AccountingPeriodEnd: accountingPeriodEnd,
		Analysis:            datatypes.JSON(raw),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"accounting_period_end", "analysis", "updated_at"}),
	}).Create(&m).Error
}

// Latest は最後に更新されたキャッシュエントリを返します（運用ツール向け）。
func (r *valuationCacheGorm) Latest(ctx context.Context) (*entity.AccountsCacheEntry, error) {
	var m ValuationModel
	err := r.db.WithContext(ctx).Order("updated_at DESC").Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCacheEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, m.CompanyNumber)
}
