package entity

import (
	"strings"
	"time"
)

const (
	// CategoryAccounts は決算書類のファイリングカテゴリです。
	CategoryAccounts = "accounts"
	// TypeAnnualAccounts は年次決算（AA）のファイリング種別です。
	TypeAnnualAccounts = "AA"

	filingDateLayout = "2006-01-02"
)

// FilingRecord は企業のファイリング履歴の1件を表します。不変の値です。
type FilingRecord struct {
	Category     string
	Description  string
	Type         string
	Date         string // YYYY-MM-DD
	DocumentLink string // links.document_metadata（存在しない場合は空）
}

// HasDocument はドキュメントメタデータへのリンクを持つかどうかを返します。
func (f FilingRecord) HasDocument() bool {
	return f.DocumentLink != ""
}

// FilingHistory は企業のファイリング履歴を表します。Itemsは登記所の返却順（新しい順）です。
type FilingHistory struct {
	Items  []FilingRecord
	Status string
}

// LatestAccounts は最新の法定決算ファイリングを返します。
//
// category == "accounts" のうち、type == "AA" のものが優先され、
// 存在しない場合は description に "account" を含むもの（大文字小文字を区別しない）が対象になります。
// 同じ優先度の中では日付が最も新しいものを選び、同日の場合は履歴の順序を維持します。
func (h FilingHistory) LatestAccounts() (FilingRecord, bool) {
	var annual, described []FilingRecord
	for _, f := range h.Items {
		if f.Category != CategoryAccounts {
			continue
		}
		switch {
		case f.Type == TypeAnnualAccounts:
			annual = append(annual, f)
		case strings.Contains(strings.ToLower(f.Description), "account"):
			described = append(described, f)
		}
	}
	if len(annual) > 0 {
		return latestByDate(annual), true
	}
	if len(described) > 0 {
		return latestByDate(described), true
	}
	return FilingRecord{}, false
}

// latestByDate は日付が最も新しいファイリングを返します。パースできない日付は最古として扱います。
func latestByDate(fs []FilingRecord) FilingRecord {
	best := fs[0]
	bestTime, bestOK := parseFilingDate(best.Date)
	for _, f := range fs[1:] {
		t, ok := parseFilingDate(f.Date)
		if !ok {
			continue
		}
		if !bestOK || t.After(bestTime) {
			best, bestTime, bestOK = f, t, true
		}
	}
	return best
}

func parseFilingDate(s string) (time.Time, bool) {
	t, err := time.Parse(filingDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
