// Package entity はcomparisonフィーチャーのドメインモデルを定義します。
package entity

import (
	companies "company_valuation/internal/feature/companies/domain/entity"
	valuation "company_valuation/internal/feature/valuation/domain/entity"
)

// Winner は比較指標の勝者です。WinnerNone は比較できないことを表します。
type Winner string

const (
	WinnerA    Winner = "A"
	WinnerB    Winner = "B"
	WinnerDraw Winner = "DRAW"
	WinnerNone Winner = ""
)

// 指標の表示形式
const (
	FormatCurrency = "currency"
	FormatNumber   = "number"
	FormatString   = "string"
	FormatDate     = "date"
)

// ComparisonMetric は2社を横並びで比較する1行です。
// ValueA/ValueB は *float64・int・string のいずれかです。
type ComparisonMetric struct {
	Label  string
	Key    string
	Format string
	ValueA any
	ValueB any
	Winner Winner
}

// ComparisonData は2社の比較結果です。分析に失敗した側のAnalysisはnilになります。
type ComparisonData struct {
	CompanyA           *companies.CompanyProfile
	CompanyB           *companies.CompanyProfile
	FinancialMetrics   []ComparisonMetric
	OperationalMetrics []ComparisonMetric
	MetadataA          companies.AccountsMetadata
	MetadataB          companies.AccountsMetadata
	AnalysisA          *valuation.AnalysisResult
	AnalysisB          *valuation.AnalysisResult
}

// NumericWinner は2つの数値を比較します。
//
// 両方が等しい（両方nilを含む）場合はDRAW、片方だけnilの場合は値がある側の勝ちです。
// lowerIsBetter が true の場合は小さい方が勝ちます。
func NumericWinner(a, b *float64, lowerIsBetter bool) Winner {
	switch {
	case a == nil && b == nil:
		return WinnerDraw
	case a == nil:
		return WinnerB
	case b == nil:
		return WinnerA
	case *a == *b:
		return WinnerDraw
	case lowerIsBetter == (*a < *b):
		return WinnerA
	default:
		return WinnerB
	}
}
