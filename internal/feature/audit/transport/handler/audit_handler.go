// Package handler はauditフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"company_valuation/internal/api"
	"company_valuation/internal/feature/audit/domain/entity"
	"company_valuation/internal/shared/authctx"
)

// AuditUsecase は監査ログ一覧のユースケースを定義します。
type AuditUsecase interface {
	ListRecent(ctx context.Context, limit int) ([]entity.AuditLog, error)
	ListForUser(ctx context.Context, userID uint, limit int) ([]entity.AuditLog, error)
}

// AuditHandler は監査ログ関連のHTTPリクエストを処理します。
type AuditHandler struct {
	uc AuditUsecase
}

// NewAuditHandler はAuditHandlerの新しいインスタンスを生成します。
func NewAuditHandler(uc AuditUsecase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// ListRecent は管理者向けに全ユーザーの最新監査ログを返します。
//
// エンドポイント例:
// GET /v1/admin/audit-logs?limit=50
func (h *AuditHandler) ListRecent(c *gin.Context) {
	logs, err := h.uc.ListRecent(c.Request.Context(), parseLimit(c))
	if err != nil {
		slog.Error("failed to list audit logs", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list audit logs"})
		return
	}
	c.JSON(http.StatusOK, api.AuditLogListResponse{Items: toAuditLogs(logs)})
}

// MyActivity はログインユーザー自身の最新監査ログを返します。
//
// エンドポイント例:
// GET /v1/me/activity
func (h *AuditHandler) MyActivity(c *gin.Context) {
	ctx := c.Request.Context()
	userID := authctx.UserID(ctx)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	logs, err := h.uc.ListForUser(ctx, *userID, parseLimit(c))
	if err != nil {
		slog.Error("failed to list user activity", "user_id", *userID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list activity"})
		return
	}
	c.JSON(http.StatusOK, api.AuditLogListResponse{Items: toAuditLogs(logs)})
}

// parseLimit は不正な値を0として扱い、上限の適用はユースケースに任せます。
func parseLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return n
}

func toAuditLogs(logs []entity.AuditLog) []api.AuditLog {
	out := make([]api.AuditLog, 0, len(logs))
	for _, l := range logs {
		out = append(out, api.AuditLog{
			ID:        l.ID,
			UserID:    l.UserID,
			UserEmail: l.UserEmail,
			Action:    l.Action,
			Details:   l.Details,
			CreatedAt: l.CreatedAt,
		})
	}
	return out
}
