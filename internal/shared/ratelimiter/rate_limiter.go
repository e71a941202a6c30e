package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	// Wait は呼び出し枠が空くまで待機します。ctxがキャンセルされた場合はそのエラーを返します。
	Wait(ctx context.Context) error
}

// RateLimiterは、固定ウィンドウ方式でAPI呼び出しの頻度を制限します。
// 複数のゴルーチンから同時に利用できます。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // ウィンドウあたりの上限
	interval  time.Duration // どの単位でリセットするか
	count     int
	lastReset time.Time
	now       func() time.Time
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
// limitが0以下の場合は1として扱います。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// Waitはレートリミットの上限に達しているかを確認し、必要であれば次のウィンドウまで待機します。
// 上限超過時は次のウィンドウの枠をロック中に予約するため、待機中の呼び出し同士が枠を奪い合うことはありません。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	rl.mu.Lock()
	now := rl.now()
	// interval を過ぎたらカウントリセット
	if !now.Before(rl.lastReset) && now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}
	if rl.count >= rl.limit {
		rl.lastReset = rl.lastReset.Add(rl.interval)
		rl.count = 0
	}
	rl.count++
	wait := rl.lastReset.Sub(now)
	rl.mu.Unlock()

	if wait <= 0 {
		return nil
	}

	slog.Warn("rate limit reached, waiting for next window", "limit", rl.limit, "wait", wait)
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Unlimited は待機しないRateLimiterInterface実装です（テストやローカル実行用）。
type Unlimited struct{}

// Wait は常に即座に戻ります。
func (Unlimited) Wait(ctx context.Context) error { return ctx.Err() }
