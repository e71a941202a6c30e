// Package usecase は監査ログの記録と閲覧のビジネスロジックを実装します。
package usecase

import (
	"context"

	"company_valuation/internal/feature/audit/domain/entity"
)

// AuditReader は監査ログの読み取り操作です。
type AuditReader interface {
	// ListRecent はユーザーのメールアドレスを付けて新しい順に返します。
	ListRecent(ctx context.Context, limit int) ([]entity.AuditLog, error)
	// ListForUser は指定ユーザーの監査ログを新しい順に返します。
	ListForUser(ctx context.Context, userID uint, limit int) ([]entity.AuditLog, error)
}

// AuditUsecase は管理者向け・ユーザー向けの監査ログ一覧を提供します。
type AuditUsecase struct {
	reader AuditReader
}

// NewAuditUsecase はAuditUsecaseの新しいインスタンスを生成します。
func NewAuditUsecase(reader AuditReader) *AuditUsecase {
	return &AuditUsecase{reader: reader}
}

// ListRecent は全ユーザーの最新の監査ログを返します（最大50件）。
func (u *AuditUsecase) ListRecent(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	return u.reader.ListRecent(ctx, clamp(limit, entity.MaxRecentLimit))
}

// ListForUser はユーザー自身の最新の監査ログを返します（最大20件）。
func (u *AuditUsecase) ListForUser(ctx context.Context, userID uint, limit int) ([]entity.AuditLog, error) {
	return u.reader.ListForUser(ctx, userID, clamp(limit, entity.MaxUserLimit))
}

func clamp(limit, max int) int {
	if limit <= 0 || limit > max {
		return max
	}
	return limit
}
