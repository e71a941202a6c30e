// Package handler はvaluationフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"company_valuation/internal/api"
	"company_valuation/internal/feature/valuation/domain"
	"company_valuation/internal/feature/valuation/domain/entity"
)

// エラーコード
const (
	CodeNoAccountsFiling   = "NO_ACCOUNTS_FILING"
	CodeNoDocument         = "NO_DOCUMENT"
	CodeDocumentFetch      = "DOCUMENT_FETCH_FAILED"
	CodeAnalysisFormat     = "ANALYSIS_FORMAT"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeInternal           = "INTERNAL"
	rateLimitMessage       = "The AI service is busy. Please try again in 60 seconds."
	internalFailureMessage = "Failed to generate AI valuation"
)

// ValuationUsecase はバリュエーション取得のユースケースを定義します。
type ValuationUsecase interface {
	GetValuation(ctx context.Context, req entity.ValuationRequest) (*entity.AnalysisResult, error)
}

// ValuationHandler はバリュエーションのHTTPリクエストを処理します。
type ValuationHandler struct {
	uc ValuationUsecase
}

// NewValuationHandler はValuationHandlerの新しいインスタンスを生成します。
func NewValuationHandler(uc ValuationUsecase) *ValuationHandler {
	return &ValuationHandler{uc: uc}
}

// GetValuation は企業のAIバリュエーションを返します。
//
// エンドポイント例:
// POST /v1/companies/:number/valuation  {"document_url": "...", "company_status": "active"}
func (h *ValuationHandler) GetValuation(c *gin.Context) {
	var body api.ValuationRequest
	// ボディは任意
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, api.ValuationResponse{Success: false, Error: "invalid request", Code: CodeInternal})
		return
	}

	req := entity.ValuationRequest{
		CompanyNumber: c.Param("number"),
		CompanyStatus: body.CompanyStatus,
		DocumentURL:   body.DocumentURL,
	}

	analysis, err := h.uc.GetValuation(c.Request.Context(), req)
	if err != nil {
		status, resp := FailureResponse(err)
		slog.Error("valuation failed", "company_number", req.CompanyNumber, "code", resp.Code, "error", err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, api.ValuationResponse{Success: true, Data: analysis})
}

// FailureResponse はバリュエーションのエラーをHTTPステータスと構造化された失敗結果に変換します。
func FailureResponse(err error) (int, api.ValuationResponse) {
	fail := func(status int, code, msg string) (int, api.ValuationResponse) {
		return status, api.ValuationResponse{Success: false, Error: msg, Code: code}
	}

	switch {
	case errors.Is(err, domain.ErrRateLimitExceeded):
		return fail(http.StatusTooManyRequests, CodeRateLimitExceeded, rateLimitMessage)
	case errors.Is(err, domain.ErrNoAccountsFilingFound):
		return fail(http.StatusNotFound, CodeNoAccountsFiling, "No accounts filing found with a document link.")
	case errors.Is(err, domain.ErrNoDocumentAvailable):
		return fail(http.StatusNotFound, CodeNoDocument, "No Document URL available")
	case errors.Is(err, domain.ErrDocumentFetch):
		return fail(http.StatusBadGateway, CodeDocumentFetch, "Failed to fetch accounts document")
	case errors.Is(err, domain.ErrAnalysisFormat):
		return fail(http.StatusBadGateway, CodeAnalysisFormat, "AI Analysis returned invalid format")
	default:
		return fail(http.StatusInternalServerError, CodeInternal, internalFailureMessage)
	}
}
