// Package entity はvaluationフィーチャーのドメインモデルを定義します。
package entity

// Confidence はAI分析結果の信頼度です。
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

const (
	// DefaultCurrency は英国企業の決算通貨です。
	DefaultCurrency = "GBP"
	// MaxStarRating は星評価の上限です。
	MaxStarRating = 5
)

// AnalysisResult は決算書PDFからAIが導出した財務スナップショットです。
// キャッシュからは不透明な値として扱われ、JSONとしてそのまま保存されます。
type AnalysisResult struct {
	NetAssets           *float64 `json:"netAssets"`
	Turnover            *float64 `json:"turnover"`
	Profit              *float64 `json:"profit"` // 明示的に開示された利益（無い場合はnil）
	ShareholderFunds    *float64 `json:"shareholderFunds"`
	Debtors             *float64 `json:"debtors"`
	CashAtBank          *float64 `json:"cashAtBank"`
	CurrentLiabilities  *float64 `json:"currentLiabilities"`
	LongTermLiabilities *float64 `json:"longTermLiabilities"`

	EstimatedProfit      *float64 `json:"estimatedProfit"` // 評価に使った利益（推計の場合あり）
	ValuationMultiplier  float64  `json:"valuationMultiplier"`
	ValuationMethodology string   `json:"valuationMethodology"`
	ValuationLow         float64  `json:"valuationLow"`
	ValuationHigh        float64  `json:"valuationHigh"`
	ValuationEstimate    *float64 `json:"valuationEstimate,omitempty"`

	Currency            string     `json:"currency"`
	Confidence          Confidence `json:"confidence"`
	EmployeeCount       string     `json:"employeeCount"`
	StarRating          float64    `json:"starRating"`
	Sector              string     `json:"sector"`
	BusinessDescription string     `json:"businessDescription"`

	KeyHighlights    []string `json:"keyHighlights"`
	ExecutiveSummary string   `json:"executiveSummary"`
}

// EffectiveProfit は明示的な利益を優先し、無い場合は推計利益を返します。
func (a *AnalysisResult) EffectiveProfit() *float64 {
	if a.Profit != nil {
		return a.Profit
	}
	return a.EstimatedProfit
}

// IsInsolvent は純資産と利益がともにマイナスの場合にtrueを返します。
func (a *AnalysisResult) IsInsolvent() bool {
	profit := a.EffectiveProfit()
	return a.NetAssets != nil && profit != nil && *a.NetAssets < 0 && *profit < 0
}

// ApplyInsolvencyFloor は債務超過かつ赤字の企業の評価額帯を0に固定します。
func (a *AnalysisResult) ApplyInsolvencyFloor() {
	if !a.IsInsolvent() {
		return
	}
	zero := 0.0
	a.ValuationLow = 0
	a.ValuationHigh = 0
	a.ValuationEstimate = &zero
}

// Estimate は評価額の代表値を返します。明示的な値が無い場合は評価額帯の中央値です。
func (a *AnalysisResult) Estimate() float64 {
	if a.ValuationEstimate != nil {
		return *a.ValuationEstimate
	}
	return (a.ValuationLow + a.ValuationHigh) / 2
}
