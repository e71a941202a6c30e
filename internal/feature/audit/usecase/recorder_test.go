package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company_valuation/internal/feature/audit/domain/entity"
	"company_valuation/internal/shared/authctx"
)

type mockWriter struct {
	mu      sync.Mutex
	entries []*entity.AuditLog
	ctxErrs []error
	err     error
	block   chan struct{}
}

func (m *mockWriter) Create(ctx context.Context, log *entity.AuditLog) error {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, log)
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	return m.err
}

func TestRecorder_LogWithUser(t *testing.T) {
	t.Parallel()

	w := &mockWriter{}
	r := NewRecorder(w, time.Second)

	ctx := authctx.WithPrincipal(context.Background(), authctx.Principal{UserID: 7, Email: "a@example.com"})
	r.Log(ctx, entity.ActionViewCompany, map[string]any{"companyNumber": "00000006"})
	r.Close()

	require.Len(t, w.entries, 1)
	got := w.entries[0]
	require.NotNil(t, got.UserID)
	assert.Equal(t, uint(7), *got.UserID)
	assert.Equal(t, entity.ActionViewCompany, got.Action)
	assert.Len(t, got.ID, 36)
	assert.False(t, got.CreatedAt.IsZero())

	var details map[string]any
	require.NoError(t, json.Unmarshal(got.Details, &details))
	assert.Equal(t, "00000006", details["companyNumber"])
}

func TestRecorder_AnonymousAndNilDetails(t *testing.T) {
	t.Parallel()

	w := &mockWriter{}
	r := NewRecorder(w, 0)

	r.Log(context.Background(), entity.ActionViewOfficer, nil)
	r.Close()

	require.Len(t, w.entries, 1)
	assert.Nil(t, w.entries[0].UserID)
	assert.JSONEq(t, `{}`, string(w.entries[0].Details))
}

func TestRecorder_DoesNotBlockAndSurvivesCancel(t *testing.T) {
	t.Parallel()

	w := &mockWriter{block: make(chan struct{})}
	r := NewRecorder(w, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Log(ctx, entity.ActionLogin, map[string]any{"method": "password"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Log blocked on the writer")
	}

	cancel()
	close(w.block)
	r.Close()

	require.Len(t, w.ctxErrs, 1)
	assert.NoError(t, w.ctxErrs[0], "write context must not inherit request cancellation")
}

func TestRecorder_WriteErrorIsSwallowed(t *testing.T) {
	t.Parallel()

	w := &mockWriter{err: errors.New("db down")}
	r := NewRecorder(w, time.Second)

	assert.NotPanics(t, func() {
		r.Log(context.Background(), entity.ActionLogin, map[string]any{})
		r.Close()
	})
	assert.Len(t, w.entries, 1)
}

func TestRecorder_EmptyActionSkipped(t *testing.T) {
	t.Parallel()

	w := &mockWriter{}
	r := NewRecorder(w, time.Second)

	r.Log(context.Background(), "  ", nil)
	r.Close()

	assert.Empty(t, w.entries)
}

func TestNop(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { Nop{}.Log(context.Background(), entity.ActionLogin, nil) })
}

func TestRecorder_LogAfterCloseIsDropped(t *testing.T) {
	t.Parallel()

	w := &mockWriter{}
	r := NewRecorder(w, time.Second)

	r.Log(context.Background(), entity.ActionLogin, nil)
	r.Close()
	r.Log(context.Background(), entity.ActionViewCompany, nil)
	r.Close()

	w.mu.Lock()
	defer w.mu.Unlock()
	require.Len(t, w.entries, 1)
	assert.Equal(t, entity.ActionLogin, w.entries[0].Action)
}
