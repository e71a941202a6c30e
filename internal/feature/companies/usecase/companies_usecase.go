// Package usecase は企業・役員の閲覧に関するビジネスロジックを実装します。
package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	auditentity "company_valuation/internal/feature/audit/domain/entity"
	"company_valuation/internal/feature/companies/domain/entity"
)

// RegistryClient は登記所APIの読み取り操作を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type RegistryClient interface {
	SearchCompanies(ctx context.Context, query string) (*entity.CompanySearchResult, error)
	GetCompanyProfile(ctx context.Context, companyNumber string) (*entity.CompanyProfile, error)
	GetCompanyOfficers(ctx context.Context, companyNumber string) (*entity.OfficerList, error)
	GetFilingHistory(ctx context.Context, companyNumber string) (*entity.FilingHistory, error)
	SearchOfficers(ctx context.Context, query string) (*entity.OfficerSearchResult, error)
	GetOfficerAppointments(ctx context.Context, officerID string) (*entity.OfficerAppointments, error)
}

// AuditLogger は監査イベントを非同期に記録します。
type AuditLogger interface {
	Log(ctx context.Context, action string, details map[string]any)
}

// CompaniesUsecase は企業検索・企業詳細・役員検索を提供します。
type CompaniesUsecase struct {
	registry RegistryClient
	audit    AuditLogger
}

// NewCompaniesUsecase はCompaniesUsecaseの新しいインスタンスを生成します。
func NewCompaniesUsecase(registry RegistryClient, audit AuditLogger) *CompaniesUsecase {
	return &CompaniesUsecase{registry: registry, audit: audit}
}

// Search は企業を検索します。空のクエリは登記所を呼ばずに空の結果を返します。
func (u *CompaniesUsecase) Search(ctx context.Context, query string) (*entity.CompanySearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &entity.CompanySearchResult{Items: []entity.CompanySummary{}}, nil
	}
	return u.registry.SearchCompanies(ctx, query)
}

// GetCompany はプロフィール・役員・ファイリング履歴を並行して取得し、決算メタデータを付けて返します。
func (u *CompaniesUsecase) GetCompany(ctx context.Context, companyNumber string) (*entity.CompanyDetail, error) {
	var (
		profile  *entity.CompanyProfile
		officers *entity.OfficerList
		history  *entity.FilingHistory
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = u.registry.GetCompanyProfile(gctx, companyNumber)
		return err
	})
	g.Go(func() error {
		var err error
		officers, err = u.registry.GetCompanyOfficers(gctx, companyNumber)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = u.registry.GetFilingHistory(gctx, companyNumber)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	u.audit.Log(ctx, auditentity.ActionViewCompany, map[string]any{
		"companyNumber": profile.CompanyNumber,
		"companyName":   profile.CompanyName,
	})

	return &entity.CompanyDetail{
		Profile:          profile,
		Officers:         officers,
		FilingHistory:    history,
		AccountsMetadata: entity.ExtractAccountsMetadata(profile, *history),
	}, nil
}

// SearchOfficers は役員を検索します。空のクエリは登記所を呼ばずに空の結果を返します。
func (u *CompaniesUsecase) SearchOfficers(ctx context.Context, query string) (*entity.OfficerSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &entity.OfficerSearchResult{Items: []entity.OfficerSummary{}}, nil
	}
	return u.registry.SearchOfficers(ctx, query)
}

// GetOfficerAppointments は役員の任命一覧を返し、閲覧を監査ログに記録します。
func (u *CompaniesUsecase) GetOfficerAppointments(ctx context.Context, officerID string) (*entity.OfficerAppointments, error) {
	appointments, err := u.registry.GetOfficerAppointments(ctx, officerID)
	if err != nil {
		return nil, err
	}

	u.audit.Log(ctx, auditentity.ActionViewOfficer, map[string]any{
		"officerId":   officerID,
		"officerName": appointments.Name,
	})
	return appointments, nil
}
