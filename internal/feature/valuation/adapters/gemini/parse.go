package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"company_valuation/internal/feature/valuation/domain"
	"company_valuation/internal/feature/valuation/domain/entity"
)

// analysisReply はモデルの応答JSONです。必須項目の欠落を検出するため数値はポインタで受けます。
type analysisReply struct {
	NetAssets           *float64 `json:"netAssets"`
	Turnover            *float64 `json:"turnover"`
	Profit              *float64 `json:"profit"`
	ShareholderFunds    *float64 `json:"shareholderFunds"`
	Debtors             *float64 `json:"debtors"`
	CashAtBank          *float64 `json:"cashAtBank"`
	CurrentLiabilities  *float64 `json:"currentLiabilities"`
	LongTermLiabilities *float64 `json:"longTermLiabilities"`

	EstimatedProfit      *float64 `json:"estimatedProfit"`
	ValuationMultiplier  *float64 `json:"valuationMultiplier"`
	ValuationMethodology string   `json:"valuationMethodology"`
	ValuationLow         *float64 `json:"valuationLow"`
	ValuationHigh        *float64 `json:"valuationHigh"`
	ValuationEstimate    *float64 `json:"valuationEstimate"`

	Currency            string   `json:"currency"`
	Confidence          string   `json:"confidence"`
	EmployeeCount       string   `json:"employeeCount"`
	StarRating          *float64 `json:"starRating"`
	Sector              string   `json:"sector"`
	BusinessDescription string   `json:"businessDescription"`
	KeyHighlights       []string `json:"keyHighlights"`
	ExecutiveSummary    string   `json:"executiveSummary"`
}

var errMissingBand = errors.New("valuationLow and valuationHigh are required")

// stripCodeFences はマークダウンのコードフェンスを取り除きます。
func stripCodeFences(text string) string {
	s := strings.ReplaceAll(text, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// parseAnalysis はモデルの応答テキストを検証済みのAnalysisResultに変換します。
// 厳密なデコードに失敗した場合はJSON修復を試みます。
func parseAnalysis(text string) (*entity.AnalysisResult, error) {
	cleaned := stripCodeFences(text)

	var reply analysisReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		repaired, rerr := jsonrepair.RepairJSON(cleaned)
		if rerr != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrAnalysisFormat, err)
		}
		reply = analysisReply{}
		if err := json.Unmarshal([]byte(repaired), &reply); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrAnalysisFormat, err)
		}
	}

	if reply.ValuationLow == nil || reply.ValuationHigh == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalysisFormat, errMissingBand)
	}

	result := &entity.AnalysisResult{
		NetAssets:            reply.NetAssets,
		Turnover:             reply.Turnover,
		Profit:               reply.Profit,
		ShareholderFunds:     reply.ShareholderFunds,
		Debtors:              reply.Debtors,
		CashAtBank:           reply.CashAtBank,
		CurrentLiabilities:   reply.CurrentLiabilities,
		LongTermLiabilities:  reply.LongTermLiabilities,
		EstimatedProfit:      reply.EstimatedProfit,
		ValuationMethodology: reply.ValuationMethodology,
		ValuationLow:         *reply.ValuationLow,
		ValuationHigh:        *reply.ValuationHigh,
		ValuationEstimate:    reply.ValuationEstimate,
		Currency:             reply.Currency,
		Confidence:           normalizeConfidence(reply.Confidence),
		EmployeeCount:        reply.EmployeeCount,
		Sector:               reply.Sector,
		BusinessDescription:  reply.BusinessDescription,
		KeyHighlights:        reply.KeyHighlights,
		ExecutiveSummary:     reply.ExecutiveSummary,
	}
	if reply.ValuationMultiplier != nil {
		result.ValuationMultiplier = *reply.ValuationMultiplier
	}
	if reply.StarRating != nil {
		result.StarRating = clampStars(*reply.StarRating)
	}
	if result.Currency == "" {
		result.Currency = entity.DefaultCurrency
	}
	if result.KeyHighlights == nil {
		result.KeyHighlights = []string{}
	}
	result.ApplyInsolvencyFloor()

	return result, nil
}

func normalizeConfidence(s string) entity.Confidence {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return entity.ConfidenceHigh
	case "medium":
		return entity.ConfidenceMedium
	default:
		return entity.ConfidenceLow
	}
}

func clampStars(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > entity.MaxStarRating {
		return entity.MaxStarRating
	}
	return v
}
