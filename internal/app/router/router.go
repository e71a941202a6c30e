// Package router wires HTTP handlers to routes.
package router

import (
	"github.com/gin-gonic/gin"

	audithandler "company_valuation/internal/feature/audit/transport/handler"
	authentity "company_valuation/internal/feature/auth/domain/entity"
	authhandler "company_valuation/internal/feature/auth/transport/handler"
	companieshandler "company_valuation/internal/feature/companies/transport/handler"
	comparisonhandler "company_valuation/internal/feature/comparison/transport/handler"
	valuationhandler "company_valuation/internal/feature/valuation/transport/handler"
	healthhandler "company_valuation/internal/platform/http/handler"
	"company_valuation/internal/platform/http/middleware"
	jwtmw "company_valuation/internal/platform/jwt"
)

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Health     *healthhandler.HealthHandler
	Auth       *authhandler.AuthHandler
	Companies  *companieshandler.CompaniesHandler
	Valuation  *valuationhandler.ValuationHandler
	Comparison *comparisonhandler.ComparisonHandler
	Audit      *audithandler.AuditHandler
}

// NewRouter builds the gin engine. Everything under /v1 requires a bearer token signed with jwtSecret.
func NewRouter(h Handlers, jwtSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())

	// 認証不要
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.POST("/signup", h.Auth.Signup)
	r.POST("/login", h.Auth.Login)

	v1 := r.Group("/v1")
	v1.Use(jwtmw.AuthRequired(jwtSecret))
	{
		v1.GET("/companies/search", h.Companies.Search)
		v1.GET("/companies/:number", h.Companies.GetCompany)
		v1.POST("/companies/:number/valuation", h.Valuation.GetValuation)

		v1.GET("/officers/search", h.Companies.SearchOfficers)
		v1.GET("/officers/:id/appointments", h.Companies.GetOfficerAppointments)

		v1.GET("/compare", h.Comparison.Compare)
		v1.POST("/compare/verdict", h.Comparison.Verdict)

		v1.GET("/me", h.Auth.Me)
		v1.GET("/me/activity", h.Audit.MyActivity)
	}

	admin := v1.Group("/admin")
	admin.Use(jwtmw.RequireRole(authentity.RoleAdmin))
	{
		admin.GET("/audit-logs", h.Audit.ListRecent)
	}

	return r
}
