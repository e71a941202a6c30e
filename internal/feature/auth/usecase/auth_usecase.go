// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	auditentity "company_valuation/internal/feature/audit/domain/entity"
	"company_valuation/internal/feature/auth/domain"
	"company_valuation/internal/feature/auth/domain/entity"
	"company_valuation/internal/shared/authctx"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// dummyHash はユーザーが存在しない場合でもbcrypt比較を行うためのハッシュです。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。メールアドレスが重複する場合はdomain.ErrUserAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, email, role string) (string, error)
}

// AuditLogger はログインイベントを記録します。
type AuditLogger interface {
	Log(ctx context.Context, action string, details map[string]any)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
	audit        AuditLogger
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator, audit AuditLogger) *authUsecase {
	return &authUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
		audit:        audit,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Signup はハッシュ化されたパスワードで新規ユーザーをmemberロールで登録します。
func (u *authUsecase) Signup(ctx context.Context, email, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: string(hashed),
		Role:     entity.RoleMember,
	}
	return u.users.Create(ctx, user)
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// ユーザーが存在しない場合でもbcrypt比較を実行し、応答時間からユーザーの存在を推測させません。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", domain.ErrInvalidCredentials
	}

	role := user.Role
	if role == "" {
		role = entity.RoleMember
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email, role)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	// ログイン前のリクエストには認証情報が無いため、ここでユーザーを紐付ける
	actx := authctx.WithPrincipal(ctx, authctx.Principal{UserID: user.ID, Email: user.Email, Role: role})
	u.audit.Log(actx, auditentity.ActionLogin, map[string]any{"method": "password"})

	return token, nil
}
