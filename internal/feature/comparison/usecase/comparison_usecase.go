// Package usecase は2社比較のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	companies "company_valuation/internal/feature/companies/domain/entity"
	"company_valuation/internal/feature/comparison/domain/entity"
	valuation "company_valuation/internal/feature/valuation/domain/entity"
)

const dateLayout = "2006-01-02"

// Registry は比較に必要な登記所の読み取り操作です。
type Registry interface {
	GetCompanyProfile(ctx context.Context, companyNumber string) (*companies.CompanyProfile, error)
	GetCompanyOfficers(ctx context.Context, companyNumber string) (*companies.OfficerList, error)
	GetFilingHistory(ctx context.Context, companyNumber string) (*companies.FilingHistory, error)
}

// Valuator は企業のバリュエーションを返します（キャッシュがあればそれを使います）。
type Valuator interface {
	GetValuation(ctx context.Context, req valuation.ValuationRequest) (*valuation.AnalysisResult, error)
}

// VerdictGenerator は2社の指標からAIの比較評価文を生成します。
type VerdictGenerator interface {
	GenerateVerdict(ctx context.Context, nameA, nameB string, metricsA, metricsB []string) (string, error)
}

// ComparisonUsecase は2社の登記情報とバリュエーションを並べて比較します。
type ComparisonUsecase struct {
	registry Registry
	valuator Valuator
	verdict  VerdictGenerator
}

// NewComparisonUsecase はComparisonUsecaseの新しいインスタンスを生成します。
func NewComparisonUsecase(registry Registry, valuator Valuator, verdict VerdictGenerator) *ComparisonUsecase {
	return &ComparisonUsecase{registry: registry, valuator: valuator, verdict: verdict}
}

type companyData struct {
	profile  *companies.CompanyProfile
	officers *companies.OfficerList
	history  *companies.FilingHistory
}

// Compare は2社のプロフィール・役員・ファイリング履歴を並行して取得し（1つでも失敗すればエラー）、
// 続けて両社のバリュエーションを並行して取得します。バリュエーションの失敗はその社の財務値をnilにします。
func (u *ComparisonUsecase) Compare(ctx context.Context, numberA, numberB string) (*entity.ComparisonData, error) {
	var a, b companyData

	g, gctx := errgroup.WithContext(ctx)
	u.fetch(gctx, g, numberA, &a)
	u.fetch(gctx, g, numberB, &b)
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch comparison data: %w", err)
	}

	var (
		wg                   sync.WaitGroup
		analysisA, analysisB *valuation.AnalysisResult
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		analysisA = u.valuate(ctx, numberA, a.profile.CompanyStatus)
	}()
	go func() {
		defer wg.Done()
		analysisB = u.valuate(ctx, numberB, b.profile.CompanyStatus)
	}()
	wg.Wait()

	return &entity.ComparisonData{
		CompanyA:           a.profile,
		CompanyB:           b.profile,
		FinancialMetrics:   financialMetrics(analysisA, analysisB),
		OperationalMetrics: operationalMetrics(a, b, analysisA, analysisB),
		MetadataA:          companies.ExtractAccountsMetadata(a.profile, *a.history),
		MetadataB:          companies.ExtractAccountsMetadata(b.profile, *b.history),
		AnalysisA:          analysisA,
		AnalysisB:          analysisB,
	}, nil
}

// Verdict は2社の指標からAIの比較評価文（マークダウン）を生成します。
func (u *ComparisonUsecase) Verdict(ctx context.Context, nameA, nameB string, metricsA, metricsB []string) (string, error) {
	return u.verdict.GenerateVerdict(ctx, nameA, nameB, metricsA, metricsB)
}

func (u *ComparisonUsecase) fetch(ctx context.Context, g *errgroup.Group, number string, out *companyData) {
	g.Go(func() error {
		p, err := u.registry.GetCompanyProfile(ctx, number)
		out.profile = p
		return err
	})
	g.Go(func() error {
		o, err := u.registry.GetCompanyOfficers(ctx, number)
		out.officers = o
		return err
	})
	g.Go(func() error {
		h, err := u.registry.GetFilingHistory(ctx, number)
		out.history = h
		return err
	})
}

func (u *ComparisonUsecase) valuate(ctx context.Context, number, status string) *valuation.AnalysisResult {
	res, err := u.valuator.GetValuation(ctx, valuation.ValuationRequest{CompanyNumber: number, CompanyStatus: status})
	if err != nil {
		slog.Warn("comparison valuation failed", "company_number", number, "error", err)
		return nil
	}
	return res
}

func financialMetrics(a, b *valuation.AnalysisResult) []entity.ComparisonMetric {
	rows := []struct {
		label, key    string
		pick          func(r *valuation.AnalysisResult) *float64
		lowerIsBetter bool
	}{
		{"Net Assets", "net_assets", func(r *valuation.AnalysisResult) *float64 { return r.NetAssets }, false},
		{"Net Profit", "profit", func(r *valuation.AnalysisResult) *float64 { return r.EffectiveProfit() }, false},
		{"Cash at Bank", "cash", func(r *valuation.AnalysisResult) *float64 { return r.CashAtBank }, false},
		{"Debtors", "debtors", func(r *valuation.AnalysisResult) *float64 { return r.Debtors }, false},
		{"Turnover", "turnover", func(r *valuation.AnalysisResult) *float64 { return r.Turnover }, false},
		{"Creditors (< 1yr)", "creditors_short", func(r *valuation.AnalysisResult) *float64 { return r.CurrentLiabilities }, true},
		{"Creditors (> 1yr)", "creditors_long", func(r *valuation.AnalysisResult) *float64 { return r.LongTermLiabilities }, true},
	}

	out := make([]entity.ComparisonMetric, 0, len(rows))
	for _, row := range rows {
		va, vb := pick(a, row.pick), pick(b, row.pick)
		out = append(out, entity.ComparisonMetric{
			Label:  row.label,
			Key:    row.key,
			Format: entity.FormatCurrency,
			ValueA: va,
			ValueB: vb,
			Winner: entity.NumericWinner(va, vb, row.lowerIsBetter),
		})
	}
	return out
}

func pick(r *valuation.AnalysisResult, f func(*valuation.AnalysisResult) *float64) *float64 {
	if r == nil {
		return nil
	}
	return f(r)
}

func operationalMetrics(a, b companyData, analysisA, analysisB *valuation.AnalysisResult) []entity.ComparisonMetric {
	officersA, officersB := float64(a.officers.ActiveCount), float64(b.officers.ActiveCount)

	return []entity.ComparisonMetric{
		{
			Label:  "Company Status",
			Key:    "status",
			Format: entity.FormatString,
			ValueA: a.profile.CompanyStatus,
			ValueB: b.profile.CompanyStatus,
			Winner: statusWinner(a.profile, b.profile),
		},
		{
			Label:  "Established Year",
			Key:    "age",
			Format: entity.FormatDate,
			ValueA: a.profile.DateOfCreation,
			ValueB: b.profile.DateOfCreation,
			Winner: ageWinner(a.profile.DateOfCreation, b.profile.DateOfCreation),
		},
		{
			Label:  "Officer Count",
			Key:    "directors",
			Format: entity.FormatNumber,
			ValueA: a.officers.ActiveCount,
			ValueB: b.officers.ActiveCount,
			Winner: entity.NumericWinner(&officersA, &officersB, false),
		},
		{
			Label:  "Employees",
			Key:    "employees",
			Format: entity.FormatString,
			ValueA: employeeCount(analysisA),
			ValueB: employeeCount(analysisB),
			Winner: entity.WinnerNone,
		},
	}
}

// statusWinner はactiveな企業を勝ちとし、それ以外は引き分けとします。
func statusWinner(a, b *companies.CompanyProfile) entity.Winner {
	switch {
	case a.IsActive() && !b.IsActive():
		return entity.WinnerA
	case b.IsActive() && !a.IsActive():
		return entity.WinnerB
	default:
		return entity.WinnerDraw
	}
}

// ageWinner は設立日が古い企業を勝ちとします。日付が解析できない場合は勝者なしです。
func ageWinner(dateA, dateB string) entity.Winner {
	ta, errA := time.Parse(dateLayout, dateA)
	tb, errB := time.Parse(dateLayout, dateB)
	switch {
	case errA != nil || errB != nil:
		return entity.WinnerNone
	case ta.Equal(tb):
		return entity.WinnerDraw
	case ta.Before(tb):
		return entity.WinnerA
	default:
		return entity.WinnerB
	}
}

func employeeCount(r *valuation.AnalysisResult) string {
	if r == nil || r.EmployeeCount == "" {
		return "Unknown"
	}
	return r.EmployeeCount
}
