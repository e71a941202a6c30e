// Package adapters はauditフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"company_valuation/internal/feature/audit/domain/entity"
	"company_valuation/internal/feature/audit/usecase"
)

type auditLogGorm struct {
	db *gorm.DB
}

var (
	_ usecase.AuditWriter = (*auditLogGorm)(nil)
	_ usecase.AuditReader = (*auditLogGorm)(nil)
)

// NewAuditLogRepository はGORMを使った監査ログリポジトリを生成します。
func NewAuditLogRepository(db *gorm.DB) *auditLogGorm {
	return &auditLogGorm{db: db}
}

// AuditLogModel は監査ログの1行です。user_idがNULLの行は匿名の操作です。
type AuditLogModel struct {
	ID        string         `gorm:"primaryKey;size:36"`
	UserID    *uint          `gorm:"index"`
	Action    string         `gorm:"size:64;not null;index"`
	Details   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null;index"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// auditLogRow はusersとのLEFT JOIN結果です。
type auditLogRow struct {
	AuditLogModel
	UserEmail *string
}

func (r *auditLogGorm) Create(ctx context.Context, e *entity.AuditLog) error {
	details := datatypes.JSON(e.Details)
	if len(details) == 0 {
		details = datatypes.JSON("{}")
	}
	m := AuditLogModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Action:    e.Action,
		Details:   details,
		CreatedAt: e.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *auditLogGorm) ListRecent(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	var rows []auditLogRow
	err := r.db.WithContext(ctx).
		Table("audit_logs").
		Select("audit_logs.*, users.email AS user_email").
		Joins("LEFT JOIN users ON users.id = audit_logs.user_id").
		Order("audit_logs.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *auditLogGorm) ListForUser(ctx context.Context, userID uint, limit int) ([]entity.AuditLog, error) {
	var rows []auditLogRow
	err := r.db.WithContext(ctx).
		Table("audit_logs").
		Select("audit_logs.*").
		Where("audit_logs.user_id = ?", userID).
		Order("audit_logs.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func toEntities(rows []auditLogRow) []entity.AuditLog {
	out := make([]entity.AuditLog, 0, len(rows))
	for _, m := range rows {
		e := entity.AuditLog{
			ID:        m.ID,
			UserID:    m.UserID,
			Action:    m.Action,
			Details:   json.RawMessage(m.Details),
			CreatedAt: m.CreatedAt,
		}
		if m.UserEmail != nil {
			e.UserEmail = *m.UserEmail
		}
		out = append(out, e)
	}
	return out
}
