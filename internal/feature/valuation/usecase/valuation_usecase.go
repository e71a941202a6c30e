// Package usecase はバリュエーション取得・キャッシュのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	auditentity "company_valuation/internal/feature/audit/domain/entity"
	companies "company_valuation/internal/feature/companies/domain/entity"
	"company_valuation/internal/feature/valuation/domain"
	"company_valuation/internal/feature/valuation/domain/entity"
)

const (
	// DefaultDocumentTimeout は決算書PDF取得のタイムアウトです。
	DefaultDocumentTimeout = 30 * time.Second
	// DefaultAnalysisTimeout はAI分析のタイムアウトです。
	DefaultAnalysisTimeout = 120 * time.Second
)

// FilingHistoryProvider は企業のファイリング履歴を取得します。
type FilingHistoryProvider interface {
	GetFilingHistory(ctx context.Context, companyNumber string) (*companies.FilingHistory, error)
}

// DocumentFetcher はドキュメントリンクから決算書PDFを取得します。
// IsTrustedDocumentURL はリクエストで指定されたリンクが取得先として許可されるかを返します。
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, documentURL string) ([]byte, error)
	IsTrustedDocumentURL(documentURL string) bool
}

// Analyzer は決算書PDFから財務スナップショットを導出します。
type Analyzer interface {
	Analyze(ctx context.Context, document []byte, hint entity.StatusHint) (*entity.AnalysisResult, error)
}

// CacheStore は企業ごとのバリュエーションキャッシュを抽象化します。
// Getはエントリが無い場合 domain.ErrCacheEntryNotFound を返します。
type CacheStore interface {
	Get(ctx context.Context, companyNumber string) (*entity.AccountsCacheEntry, error)
	Upsert(ctx context.Context, companyNumber, accountingPeriodEnd string, analysis *entity.AnalysisResult) error
}

// AuditLogger は監査イベントを非同期に記録します。
type AuditLogger interface {
	Log(ctx context.Context, action string, details map[string]any)
}

// Options はオーケストレーターのタイムアウト設定です。ゼロ値の項目はデフォルト値になります。
type Options struct {
	DocumentTimeout time.Duration
	AnalysisTimeout time.Duration
}

// ValuationUsecase はファイリング履歴・キャッシュ・PDF取得・AI分析を組み合わせてバリュエーションを返します。
type ValuationUsecase struct {
	registry FilingHistoryProvider
	fetcher  DocumentFetcher
	analyzer Analyzer
	cache    CacheStore
	audit    AuditLogger
	opts     Options
	group    singleflight.Group
	inflight sync.WaitGroup
}

// NewValuationUsecase はValuationUsecaseの新しいインスタンスを生成します。
func NewValuationUsecase(
	registry FilingHistoryProvider,
	fetcher DocumentFetcher,
	analyzer Analyzer,
	cache CacheStore,
	audit AuditLogger,
	opts Options,
) *ValuationUsecase {
	if opts.DocumentTimeout <= 0 {
		opts.DocumentTimeout = DefaultDocumentTimeout
	}
	if opts.AnalysisTimeout <= 0 {
		opts.AnalysisTimeout = DefaultAnalysisTimeout
	}
	return &ValuationUsecase{
		registry: registry,
		fetcher:  fetcher,
		analyzer: analyzer,
		cache:    cache,
		audit:    audit,
		opts:     opts,
	}
}

// GetValuation は企業の最新決算に対するバリュエーションを返します。
//
// 最新の決算ファイリング日付をキャッシュキーとし、キャッシュの日付が一致すればそのまま返します。
// 一致しない場合はPDFを取得してAI分析を行い、結果をキャッシュに保存します。
// 同一企業・同一決算日・同一ドキュメント・同一時制ヒントに対する同時のキャッシュミスは1回の計算にまとめられます。
func (u *ValuationUsecase) GetValuation(ctx context.Context, req entity.ValuationRequest) (*entity.AnalysisResult, error) {
	history, err := u.registry.GetFilingHistory(ctx, req.CompanyNumber)
	if err != nil {
		return nil, fmt.Errorf("fetch filing history: %w", err)
	}

	latest, ok := history.LatestAccounts()
	if !ok {
		return nil, domain.ErrNoAccountsFilingFound
	}
	cacheKeyDate := latest.Date

	if cached := u.lookup(ctx, req.CompanyNumber, cacheKeyDate); cached != nil {
		return cached, nil
	}

	docURL, err := u.resolveDocument(req, latest)
	if err != nil {
		return nil, err
	}
	hint := entity.NewStatusHint(req.CompanyStatus)

	// 取得するドキュメントと時制ヒントが同じ呼び出しだけを1回の計算にまとめる
	key := strings.Join([]string{req.CompanyNumber, cacheKeyDate, docURL, strconv.FormatBool(hint.PastTense)}, "|")

	u.inflight.Add(1)
	ch := u.group.DoChan(key, func() (any, error) {
		// 呼び出し元の1つがキャンセルしても合流した他の呼び出しを失敗させないよう切り離す
		return u.compute(context.WithoutCancel(ctx), req, latest, docURL, hint)
	})

	select {
	case <-ctx.Done():
		go func() {
			<-ch
			u.inflight.Done()
		}()
		return nil, ctx.Err()
	case res := <-ch:
		u.inflight.Done()
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entity.AnalysisResult), nil
	}
}

// Wait は実行中のバリュエーション計算がすべて終わるか、ctxが終了するまで待機します。
// 計算はリクエストのキャンセルから切り離されているため、シャットダウン時は監査ログを閉じる前に呼び出します。
func (u *ValuationUsecase) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		u.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resolveDocument は取得するドキュメントリンクを決定します。
// リクエストでの指定は許可された取得先に限られます。
func (u *ValuationUsecase) resolveDocument(req entity.ValuationRequest, latest companies.FilingRecord) (string, error) {
	if req.DocumentURL == "" {
		if latest.DocumentLink == "" {
			return "", domain.ErrNoDocumentAvailable
		}
		return latest.DocumentLink, nil
	}
	if !u.fetcher.IsTrustedDocumentURL(req.DocumentURL) {
		slog.Warn("rejected untrusted document url", "company_number", req.CompanyNumber, "url", req.DocumentURL)
		return "", fmt.Errorf("%w: untrusted document url", domain.ErrNoDocumentAvailable)
	}
	return req.DocumentURL, nil
}

// lookup はキャッシュを参照し、決算日が一致する場合のみ分析結果を返します。
// 読み取りエラーはキャッシュミスとして扱います。
func (u *ValuationUsecase) lookup(ctx context.Context, companyNumber, cacheKeyDate string) *entity.AnalysisResult {
	entry, err := u.cache.Get(ctx, companyNumber)
	switch {
	case errors.Is(err, domain.ErrCacheEntryNotFound):
		return nil
	case err != nil:
		slog.Warn("valuation cache lookup failed, recomputing",
			"company_number", companyNumber, "error", fmt.Errorf("%w: %w", domain.ErrCacheIO, err))
		return nil
	}

	if !entry.IsValidFor(cacheKeyDate) {
		slog.Info("valuation cache stale",
			"company_number", companyNumber, "cached_date", entry.AccountingPeriodEnd, "latest_date", cacheKeyDate)
		return nil
	}

	slog.Info("valuation cache hit", "company_number", companyNumber, "accounting_period_end", cacheKeyDate)
	analysis := entry.Analysis
	return &analysis
}

// compute はPDF取得・AI分析・キャッシュ保存・監査記録を行います。
// 最新決算のリンク以外のドキュメントから得た結果はキャッシュに保存しません。
func (u *ValuationUsecase) compute(ctx context.Context, req entity.ValuationRequest, latest companies.FilingRecord, docURL string, hint entity.StatusHint) (*entity.AnalysisResult, error) {
	document, err := u.fetchDocument(ctx, docURL)
	if err != nil {
		return nil, err
	}

	analysis, err := u.analyze(ctx, document, hint)
	if err != nil {
		return nil, err
	}

	if sameDocument(docURL, latest.DocumentLink) {
		if err := u.cache.Upsert(ctx, req.CompanyNumber, latest.Date, analysis); err != nil {
			slog.Error("failed to save valuation cache",
				"company_number", req.CompanyNumber, "error", fmt.Errorf("%w: %w", domain.ErrCacheIO, err))
		}
	} else {
		slog.Info("valuation from document override not cached", "company_number", req.CompanyNumber, "url", docURL)
	}

	u.audit.Log(ctx, auditentity.ActionValuationGenerated, map[string]any{
		"companyNumber": req.CompanyNumber,
		"companyStatus": req.CompanyStatus,
		"docUrl":        docURL,
		"valuation":     analysis.Estimate(),
	})

	return analysis, nil
}

// sameDocument はメタデータリンクとコンテンツリンクを同一視して比較します。
func sameDocument(a, b string) bool {
	norm := func(s string) string {
		return strings.TrimSuffix(strings.TrimRight(s, "/"), "/content")
	}
	return b != "" && norm(a) == norm(b)
}

func (u *ValuationUsecase) fetchDocument(ctx context.Context, docURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, u.opts.DocumentTimeout)
	defer cancel()

	document, err := u.fetcher.FetchDocument(ctx, docURL)
	if err != nil {
		slog.Error("failed to fetch accounts document", "url", docURL, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrDocumentFetch, err)
	}
	return document, nil
}

func (u *ValuationUsecase) analyze(ctx context.Context, document []byte, hint entity.StatusHint) (*entity.AnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, u.opts.AnalysisTimeout)
	defer cancel()

	analysis, err := u.analyzer.Analyze(ctx, document, hint)
	switch {
	case err == nil:
		return analysis, nil
	case errors.Is(err, domain.ErrRateLimitExceeded):
		return nil, err
	case domain.IsRateLimitMessage(err.Error()):
		return nil, fmt.Errorf("%w: %w", domain.ErrRateLimitExceeded, err)
	case errors.Is(err, domain.ErrAnalysisFormat):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalysisFormat, err)
	}
}
