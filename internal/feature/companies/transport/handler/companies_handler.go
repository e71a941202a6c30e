// Package handler はcompaniesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"company_valuation/internal/api"
	"company_valuation/internal/feature/companies/domain"
	"company_valuation/internal/feature/companies/domain/entity"
)

// CompaniesUsecase は企業・役員閲覧のユースケースを定義します。
type CompaniesUsecase interface {
	Search(ctx context.Context, query string) (*entity.CompanySearchResult, error)
	GetCompany(ctx context.Context, companyNumber string) (*entity.CompanyDetail, error)
	SearchOfficers(ctx context.Context, query string) (*entity.OfficerSearchResult, error)
	GetOfficerAppointments(ctx context.Context, officerID string) (*entity.OfficerAppointments, error)
}

// CompaniesHandler は企業・役員閲覧のHTTPリクエストを処理します。
type CompaniesHandler struct {
	uc CompaniesUsecase
}

// NewCompaniesHandler はCompaniesHandlerの新しいインスタンスを生成します。
func NewCompaniesHandler(uc CompaniesUsecase) *CompaniesHandler {
	return &CompaniesHandler{uc: uc}
}

// Search は企業検索の結果を返します。
//
// エンドポイント例:
// GET /v1/companies/search?q=acme
func (h *CompaniesHandler) Search(c *gin.Context) {
	res, err := h.uc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeRegistryError(c, "failed to search companies", err)
		return
	}

	items := make([]api.CompanySummary, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, api.CompanySummary{
			Title:          it.Title,
			CompanyNumber:  it.CompanyNumber,
			CompanyStatus:  it.CompanyStatus,
			DateOfCreation: it.DateOfCreation,
			Kind:           it.Kind,
			Address:        ToAddress(it.Address),
		})
	}
	c.JSON(http.StatusOK, api.CompanySearchResponse{Items: items, TotalResults: res.TotalResults})
}

// GetCompany は企業のプロフィール・役員・ファイリング履歴・決算メタデータを返します。
//
// エンドポイント例:
// GET /v1/companies/01234567
func (h *CompaniesHandler) GetCompany(c *gin.Context) {
	detail, err := h.uc.GetCompany(c.Request.Context(), c.Param("number"))
	if err != nil {
		writeRegistryError(c, "failed to fetch company", err)
		return
	}

	c.JSON(http.StatusOK, api.CompanyDetailResponse{
		Profile:          ToCompanyProfile(detail.Profile),
		Officers:         toOfficerList(detail.Officers),
		FilingHistory:    toFilings(detail.FilingHistory),
		AccountsMetadata: ToAccountsMetadata(detail.AccountsMetadata),
	})
}

// SearchOfficers は役員検索の結果を返します。
//
// エンドポイント例:
// GET /v1/officers/search?q=jane+smith
func (h *CompaniesHandler) SearchOfficers(c *gin.Context) {
	res, err := h.uc.SearchOfficers(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeRegistryError(c, "failed to search officers", err)
		return
	}

	items := make([]api.OfficerSummary, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, api.OfficerSummary{
			Title:            it.Title,
			OfficerID:        it.OfficerID(),
			Kind:             it.Kind,
			AppointmentCount: it.AppointmentCount,
			DateOfBirth:      toPartialDate(it.DateOfBirth),
			Address:          ToAddress(it.Address),
		})
	}
	c.JSON(http.StatusOK, api.OfficerSearchResponse{Items: items, TotalResults: res.TotalResults})
}

// GetOfficerAppointments は役員の任命一覧を返します。
//
// エンドポイント例:
// GET /v1/officers/abc123/appointments
func (h *CompaniesHandler) GetOfficerAppointments(c *gin.Context) {
	res, err := h.uc.GetOfficerAppointments(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRegistryError(c, "failed to fetch officer appointments", err)
		return
	}

	items := make([]api.Appointment, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, api.Appointment{
			CompanyName:   it.CompanyName,
			CompanyNumber: it.CompanyNumber,
			CompanyStatus: it.CompanyStatus,
			OfficerRole:   it.OfficerRole,
			AppointedOn:   it.AppointedOn,
			ResignedOn:    it.ResignedOn,
		})
	}
	c.JSON(http.StatusOK, api.OfficerAppointmentsResponse{
		Name:         res.Name,
		TotalResults: res.TotalResults,
		DateOfBirth:  toPartialDate(res.DateOfBirth),
		Items:        items,
	})
}

func writeRegistryError(c *gin.Context, msg string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "not found"})
		return
	}
	slog.Error(msg, "error", err, "path", c.Request.URL.Path)
	c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: msg})
}
