package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	companies "company_valuation/internal/feature/companies/domain/entity"
	"company_valuation/internal/feature/comparison/domain/entity"
	"company_valuation/internal/feature/comparison/transport/handler"
	"company_valuation/internal/feature/valuation/domain"
)

// mockComparisonUsecase はComparisonUsecaseのモック実装です。
type mockComparisonUsecase struct {
	CompareFunc func(ctx context.Context, numberA, numberB string) (*entity.ComparisonData, error)
	VerdictFunc func(ctx context.Context, nameA, nameB string, metricsA, metricsB []string) (string, error)
}

func (m *mockComparisonUsecase) Compare(ctx context.Context, numberA, numberB string) (*entity.ComparisonData, error) {
	return m.CompareFunc(ctx, numberA, numberB)
}

func (m *mockComparisonUsecase) Verdict(ctx context.Context, nameA, nameB string, metricsA, metricsB []string) (string, error) {
	return m.VerdictFunc(ctx, nameA, nameB, metricsA, metricsB)
}

func setupRouter(uc handler.ComparisonUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewComparisonHandler(uc)
	r := gin.New()
	r.GET("/v1/compare", h.Compare)
	r.POST("/v1/compare/verdict", h.Verdict)
	return r
}

func TestComparisonHandler_Compare(t *testing.T) {
	netA := 1000.0
	uc := &mockComparisonUsecase{CompareFunc: func(ctx context.Context, numberA, numberB string) (*entity.ComparisonData, error) {
		assert.Equal(t, "A1", numberA)
		assert.Equal(t, "B2", numberB)
		return &entity.ComparisonData{
			CompanyA: &companies.CompanyProfile{CompanyName: "ALPHA LTD"},
			CompanyB: &companies.CompanyProfile{CompanyName: "BETA LTD"},
			FinancialMetrics: []entity.ComparisonMetric{
				{Label: "Net Assets", Key: "net_assets", Format: entity.FormatCurrency, ValueA: &netA, ValueB: (*float64)(nil), Winner: entity.WinnerA},
			},
			OperationalMetrics: []entity.ComparisonMetric{
				{Label: "Employees", Key: "employees", Format: entity.FormatString, ValueA: "Unknown", ValueB: "10", Winner: entity.WinnerNone},
			},
		}, nil
	}}

	w := httptest.NewRecorder()
	setupRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/compare?a=A1&b=B2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"value_a":1000,"value_b":null,"winner":"A"`)
	assert.Contains(t, body, `"key":"employees","format":"string","value_a":"Unknown","value_b":"10","winner":null`)
	assert.Contains(t, body, `"analysis":null`)
}

func TestComparisonHandler_Compare_BadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	setupRouter(&mockComparisonUsecase{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/compare?a=A1", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComparisonHandler_Verdict(t *testing.T) {
	tests := []struct {
		name       string
		verdict    string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "markdown rendered to html",
			verdict:    "**ALPHA LTD** demonstrates stronger liquidity.",
			wantStatus: http.StatusOK,
			wantBody:   `\u003cstrong\u003eALPHA LTD\u003c/strong\u003e`,
		},
		{
			name:       "rate limited",
			err:        fmt.Errorf("%w: Error 429", domain.ErrRateLimitExceeded),
			wantStatus: http.StatusTooManyRequests,
			wantBody:   `"code":"RATE_LIMIT_EXCEEDED"`,
		},
		{
			name:       "model failure",
			err:        errors.New("boom"),
			wantStatus: http.StatusBadGateway,
			wantBody:   `"error":"Verdict unavailable."`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockComparisonUsecase{VerdictFunc: func(ctx context.Context, nameA, nameB string, metricsA, metricsB []string) (string, error) {
				assert.Equal(t, []string{"Net Assets: 1000"}, metricsA)
				return tt.verdict, tt.err
			}}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/compare/verdict", strings.NewReader(
				`{"name_a":"ALPHA LTD","name_b":"BETA LTD","metrics_a":["Net Assets: 1000"],"metrics_b":["Net Assets: 500"]}`))
			req.Header.Set("Content-Type", "application/json")
			setupRouter(uc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
