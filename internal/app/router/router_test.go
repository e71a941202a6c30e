package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	audithandler "company_valuation/internal/feature/audit/transport/handler"
	authhandler "company_valuation/internal/feature/auth/transport/handler"
	companieshandler "company_valuation/internal/feature/companies/transport/handler"
	comparisonhandler "company_valuation/internal/feature/comparison/transport/handler"
	valuationhandler "company_valuation/internal/feature/valuation/transport/handler"
	healthhandler "company_valuation/internal/platform/http/handler"
	jwtmw "company_valuation/internal/platform/jwt"
)

const testSecret = "router-secret"

// newTestRouter mounts handlers whose usecases are never reached by these tests.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(Handlers{
		Health:     healthhandler.NewHealthHandler(nil),
		Auth:       authhandler.NewAuthHandler(nil),
		Companies:  companieshandler.NewCompaniesHandler(nil),
		Valuation:  valuationhandler.NewValuationHandler(nil),
		Comparison: comparisonhandler.NewComparisonHandler(nil),
		Audit:      audithandler.NewAuditHandler(nil),
	}, testSecret)
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, err := jwtmw.NewGenerator(testSecret, time.Hour).GenerateToken(1, "u@example.com", role)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return "Bearer " + token
}

func TestRouter_Access(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		status int
	}{
		{"health is public", http.MethodGet, "/healthz", "", http.StatusOK},
		{"companies require token", http.MethodGet, "/v1/companies/search?q=acme", "", http.StatusUnauthorized},
		{"valuation requires token", http.MethodPost, "/v1/companies/01234567/valuation", "", http.StatusUnauthorized},
		{"compare requires token", http.MethodGet, "/v1/compare?a=1&b=2", "", http.StatusUnauthorized},
		{"compare validates params", http.MethodGet, "/v1/compare?a=1", "member", http.StatusBadRequest},
		{"admin list forbidden for members", http.MethodGet, "/v1/admin/audit-logs", "member", http.StatusForbidden},
		{"admin list requires token", http.MethodGet, "/v1/admin/audit-logs", "", http.StatusUnauthorized},
		{"me requires token", http.MethodGet, "/v1/me", "", http.StatusUnauthorized},
		{"me returns the caller", http.MethodGet, "/v1/me", "member", http.StatusOK},
		{"unknown route", http.MethodGet, "/v1/nowhere", "member", http.StatusNotFound},
	}

	r := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", bearer(t, tt.auth))
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}
