// Package handler はcomparisonフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"

	"company_valuation/internal/api"
	companies "company_valuation/internal/feature/companies/transport/handler"
	"company_valuation/internal/feature/comparison/domain/entity"
	"company_valuation/internal/feature/valuation/domain"
)

// ComparisonUsecase は2社比較のユースケースを定義します。
type ComparisonUsecase interface {
	Compare(ctx context.Context, numberA, numberB string) (*entity.ComparisonData, error)
	Verdict(ctx context.Context, nameA, nameB string, metricsA, metricsB []string) (string, error)
}

// ComparisonHandler は2社比較のHTTPリクエストを処理します。
type ComparisonHandler struct {
	uc       ComparisonUsecase
	markdown goldmark.Markdown
}

// NewComparisonHandler はComparisonHandlerの新しいインスタンスを生成します。
func NewComparisonHandler(uc ComparisonUsecase) *ComparisonHandler {
	return &ComparisonHandler{uc: uc, markdown: goldmark.New()}
}

// Compare は2社の比較結果を返します。
//
// エンドポイント例:
// GET /v1/compare?a=01234567&b=07654321
func (h *ComparisonHandler) Compare(c *gin.Context) {
	a, b := strings.TrimSpace(c.Query("a")), strings.TrimSpace(c.Query("b"))
	if a == "" || b == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "query parameters a and b are required"})
		return
	}

	data, err := h.uc.Compare(c.Request.Context(), a, b)
	if err != nil {
		slog.Error("comparison failed", "a", a, "b", b, "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to fetch comparison data"})
		return
	}

	c.JSON(http.StatusOK, api.ComparisonResponse{
		CompanyA: api.ComparisonSide{
			Profile:          companies.ToCompanyProfile(data.CompanyA),
			AccountsMetadata: companies.ToAccountsMetadata(data.MetadataA),
			Analysis:         data.AnalysisA,
		},
		CompanyB: api.ComparisonSide{
			Profile:          companies.ToCompanyProfile(data.CompanyB),
			AccountsMetadata: companies.ToAccountsMetadata(data.MetadataB),
			Analysis:         data.AnalysisB,
		},
		FinancialMetrics:   toMetrics(data.FinancialMetrics),
		OperationalMetrics: toMetrics(data.OperationalMetrics),
	})
}

// Verdict はAIによる比較評価をマークダウンとHTMLで返します。
//
// エンドポイント例:
// POST /v1/compare/verdict  {"name_a": "...", "name_b": "...", "metrics_a": [...], "metrics_b": [...]}
func (h *ComparisonHandler) Verdict(c *gin.Context) {
	var req api.VerdictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	verdict, err := h.uc.Verdict(c.Request.Context(), req.NameA, req.NameB, req.MetricsA, req.MetricsB)
	if err != nil {
		slog.Error("verdict generation failed", "name_a", req.NameA, "name_b", req.NameB, "error", err)
		if errors.Is(err, domain.ErrRateLimitExceeded) {
			c.JSON(http.StatusTooManyRequests, api.VerdictResponse{
				Error: "The AI service is busy. Please try again in 60 seconds.",
				Code:  "RATE_LIMIT_EXCEEDED",
			})
			return
		}
		c.JSON(http.StatusBadGateway, api.VerdictResponse{Error: "Verdict unavailable.", Code: "ANALYSIS_FORMAT"})
		return
	}

	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(verdict), &buf); err != nil {
		slog.Warn("failed to render verdict markdown", "error", err)
	}

	c.JSON(http.StatusOK, api.VerdictResponse{Success: true, Markdown: verdict, HTML: buf.String()})
}

func toMetrics(ms []entity.ComparisonMetric) []api.ComparisonMetric {
	out := make([]api.ComparisonMetric, 0, len(ms))
	for _, m := range ms {
		var winner *string
		if m.Winner != entity.WinnerNone {
			w := string(m.Winner)
			winner = &w
		}
		out = append(out, api.ComparisonMetric{
			Label:  m.Label,
			Key:    m.Key,
			Format: m.Format,
			ValueA: m.ValueA,
			ValueB: m.ValueB,
			Winner: winner,
		})
	}
	return out
}
