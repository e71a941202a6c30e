package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"company_valuation/internal/feature/audit/domain"
	"company_valuation/internal/feature/audit/domain/entity"
	"company_valuation/internal/shared/authctx"
)

// DefaultWriteTimeout は監査ログ1件の書き込みタイムアウトです。
const DefaultWriteTimeout = 5 * time.Second

// AuditWriter は監査ログを永続化します。
type AuditWriter interface {
	Create(ctx context.Context, log *entity.AuditLog) error
}

// Recorder は監査イベントをバックグラウンドで書き込みます。
// Log は呼び出し元をブロックせず、書き込みエラーはログに出力するだけで返しません。
type Recorder struct {
	writer  AuditWriter
	timeout time.Duration
	now     func() time.Time

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewRecorder はRecorderの新しいインスタンスを生成します。timeoutが0以下の場合はデフォルト値を使います。
func NewRecorder(writer AuditWriter, timeout time.Duration) *Recorder {
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	return &Recorder{writer: writer, timeout: timeout, now: time.Now}
}

// Log は監査イベントを記録します。ユーザーIDはリクエストコンテキストから取得し、無い場合はNULLになります。
// 書き込みはリクエストのキャンセルから切り離された独自のタイムアウトで実行されます。
func (r *Recorder) Log(ctx context.Context, action string, details map[string]any) {
	if strings.TrimSpace(action) == "" {
		slog.Error("audit log skipped", "error", domain.ErrInvalidAction)
		return
	}

	raw, err := json.Marshal(details)
	if err != nil {
		slog.Error("failed to encode audit details", "action", action, "error", err)
		return
	}
	if details == nil {
		raw = []byte("{}")
	}

	entry := &entity.AuditLog{
		ID:        uuid.NewString(),
		UserID:    authctx.UserID(ctx),
		Action:    action,
		Details:   raw,
		CreatedAt: r.now().UTC(),
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		slog.Warn("audit recorder closed, event dropped", "action", action)
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()

		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		if err := r.writer.Create(wctx, entry); err != nil {
			slog.Error("failed to write audit log", "action", action, "error", err)
		}
	}()
}

// Close は以降のイベントを破棄するようにし、未完了の書き込みがすべて終わるまで待機します。
func (r *Recorder) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.wg.Wait()
}

// Nop は何も記録しない監査ロガーです。
type Nop struct{}

// Log は何もしません。
func (Nop) Log(context.Context, string, map[string]any) {}
