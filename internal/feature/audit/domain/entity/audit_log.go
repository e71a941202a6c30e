// Package entity はauditフィーチャーのドメインモデルを定義します。
package entity

import (
	"encoding/json"
	"time"
)

// 監査アクション
const (
	ActionLogin              = "LOGIN"
	ActionViewCompany        = "VIEW_COMPANY"
	ActionViewOfficer        = "VIEW_OFFICER"
	ActionValuationGenerated = "VALUATION_GENERATED"
)

const (
	// MaxRecentLimit は管理者向け一覧の最大件数です。
	MaxRecentLimit = 50
	// MaxUserLimit はユーザー向け一覧の最大件数です。
	MaxUserLimit = 20
)

// AuditLog はユーザー操作の監査記録です。UserIDがnilの場合は匿名の操作です。
type AuditLog struct {
	ID        string
	UserID    *uint
	UserEmail string // 一覧取得時のみ設定される
	Action    string
	Details   json.RawMessage
	CreatedAt time.Time
}
