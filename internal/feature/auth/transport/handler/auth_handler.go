// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"company_valuation/internal/api"
	"company_valuation/internal/feature/auth/domain"
	"company_valuation/internal/shared/authctx"
)

// TokenType はログインレスポンスで返すトークン種別です。
const TokenType = "Bearer"

// AuthUsecase はハンドラーが必要とする認証操作です。
type AuthUsecase interface {
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler はサインアップ・ログイン・呼び出し元情報のエンドポイントを提供します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup は POST /signup を処理します。
// 入力不正は400、メール重複は409、それ以外の失敗は500になります。
// 失敗理由はレスポンスに含めずログにのみ残します。
func (h *AuthHandler) Signup(c *gin.Context) {
	var req api.SignupRequest
	if !bind(c, "signup", &req) {
		return
	}
	if err := h.auth.Signup(c.Request.Context(), req.Email, req.Password); err != nil {
		slog.Warn("signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(signupStatus(err), api.ErrorResponse{Error: "signup failed"})
		return
	}
	slog.Info("user signed up", "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
}

// Login は POST /login を処理し、成功時にBearerトークンを返します。
// 認証に関するあらゆる失敗は同じ401レスポンスになります。
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if !bind(c, "login", &req) {
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, api.TokenResponse{Token: token, TokenType: TokenType})
}

// Me は GET /v1/me を処理し、トークンから復元した呼び出し元を返します。
func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := authctx.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, api.MeResponse{ID: p.UserID, Email: p.Email, Role: p.Role})
}

func bind(c *gin.Context, op string, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		slog.Warn(op+" validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return false
	}
	return true
}

func signupStatus(err error) int {
	if errors.Is(err, domain.ErrUserAlreadyExists) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
