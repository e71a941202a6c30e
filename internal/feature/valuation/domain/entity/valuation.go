package entity

import (
	"strings"
	"time"
)

// AccountsCacheEntry は企業ごとに1行だけ保持されるバリュエーションキャッシュです。
// AccountingPeriodEnd は計算元となった決算ファイリングの日付で、キャッシュの有効性判定に使います。
type AccountsCacheEntry struct {
	CompanyNumber       string
	AccountingPeriodEnd string
	Analysis            AnalysisResult
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsValidFor はエントリが指定された決算日に対して有効かどうかを返します。
func (e *AccountsCacheEntry) IsValidFor(accountingPeriodEnd string) bool {
	return e != nil && e.AccountingPeriodEnd == accountingPeriodEnd
}

// ValuationRequest はバリュエーション取得のリクエストです。
type ValuationRequest struct {
	CompanyNumber string
	CompanyStatus string // 任意。解散・清算中の場合は過去形で記述させる
	DocumentURL   string // 任意。指定された場合はファイリングのリンクより優先する
}

// StatusHint はAI分析に渡す企業ステータスと時制の指示です。
type StatusHint struct {
	CompanyStatus string
	PastTense     bool
}

// NewStatusHint は企業ステータスから時制の指示を導出します。
// dissolved または liquidation の場合は過去形になります。
func NewStatusHint(companyStatus string) StatusHint {
	s := strings.ToLower(strings.TrimSpace(companyStatus))
	return StatusHint{
		CompanyStatus: companyStatus,
		PastTense:     s == "dissolved" || s == "liquidation",
	}
}
