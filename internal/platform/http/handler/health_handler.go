// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"company_valuation/internal/api"
)

// Pinger は依存サービスの疎通を確認します。
type Pinger func(ctx context.Context) error

// HealthHandler は /healthz エンドポイントを処理します。
type HealthHandler struct {
	checks  map[string]Pinger
	timeout time.Duration
}

// NewHealthHandler はHealthHandlerを生成します。checksのキーはレスポンスに出力される名前です。
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// Health はサービスヘルスチェックを処理します。
// いずれかの依存が応答しない場合は503を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
		return
	}

	status, res := h.run(c.Request.Context())

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}
	c.JSON(status, res)
}

func (h *HealthHandler) run(ctx context.Context) (int, api.HealthResponse) {
	res := api.HealthResponse{Status: "ok"}
	if len(h.checks) == 0 {
		return http.StatusOK, res
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	status := http.StatusOK
	res.Checks = make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			slog.Warn("health check failed", "check", name, "error", err)
			res.Checks[name] = "error"
			res.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		res.Checks[name] = "ok"
	}
	return status, res
}
