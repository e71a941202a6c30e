package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"company_valuation/internal/feature/auth/domain"
	"company_valuation/internal/shared/authctx"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	SignupFunc func(ctx context.Context, email, password string) error
	LoginFunc  func(ctx context.Context, email, password string) (string, error)
	calls      int
}

func (m *mockAuthUsecase) Signup(ctx context.Context, email, password string) error {
	m.calls++
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, email, password)
	}
	return nil
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	m.calls++
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "", errors.New("login failed")
}

func postJSON(r *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockSignupFunc func(ctx context.Context, email, password string) error
		expectedStatus int
		expectedBody   gin.H
		expectedCalls  int
	}{
		{
			name:           "success: user registration",
			requestBody:    gin.H{"email": "test@example.com", "password": "password123"},
			mockSignupFunc: func(ctx context.Context, email, password string) error { return nil },
			expectedStatus: http.StatusCreated,
			expectedBody:   gin.H{"message": "ok"},
			expectedCalls:  1,
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"email": "invalid-email", "password": "password123"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:           "failure: short password",
			requestBody:    gin.H{"email": "test@example.com", "password": "short"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:           "failure: duplicate email",
			requestBody:    gin.H{"email": "existing@example.com", "password": "password123"},
			mockSignupFunc: func(ctx context.Context, email, password string) error { return domain.ErrUserAlreadyExists },
			expectedStatus: http.StatusConflict,
			expectedBody:   gin.H{"error": "signup failed"},
			expectedCalls:  1,
		},
		{
			name:           "failure: storage error",
			requestBody:    gin.H{"email": "test@example.com", "password": "password123"},
			mockSignupFunc: func(ctx context.Context, email, password string) error { return errors.New("db down") },
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   gin.H{"error": "signup failed"},
			expectedCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{SignupFunc: tt.mockSignupFunc}
			router := gin.New()
			router.POST("/signup", NewAuthHandler(mockUC).Signup)

			w := postJSON(router, "/signup", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCalls, mockUC.calls)

			var responseBody gin.H
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockLoginFunc  func(ctx context.Context, email, password string) (string, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:           "success: user login",
			requestBody:    gin.H{"email": "test@example.com", "password": "password123"},
			mockLoginFunc:  func(ctx context.Context, email, password string) (string, error) { return "dummy-jwt-token", nil },
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"token": "dummy-jwt-token", "token_type": "Bearer"},
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"email": "invalid-email", "password": "password123"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:           "failure: missing password",
			requestBody:    gin.H{"email": "test@example.com"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: invalid credentials",
			requestBody: gin.H{"email": "wrong@example.com", "password": "wrong-password"},
			mockLoginFunc: func(ctx context.Context, email, password string) (string, error) {
				return "", domain.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"error": "invalid email or password"},
		},
		{
			name:        "failure: token signing error is hidden",
			requestBody: gin.H{"email": "test@example.com", "password": "password123"},
			mockLoginFunc: func(ctx context.Context, email, password string) (string, error) {
				return "", errors.New("failed to generate token")
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"error": "invalid email or password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/login", NewAuthHandler(&mockAuthUsecase{LoginFunc: tt.mockLoginFunc}).Login)

			w := postJSON(router, "/login", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &responseBody))
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns the principal from the request context", func(t *testing.T) {
		router := gin.New()
		router.GET("/v1/me", func(c *gin.Context) {
			ctx := authctx.WithPrincipal(c.Request.Context(), authctx.Principal{UserID: 7, Email: "a@example.com", Role: "admin"})
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		}, NewAuthHandler(&mockAuthUsecase{}).Me)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/v1/me", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":7,"email":"a@example.com","role":"admin"}`, w.Body.String())
	})

	t.Run("401 without principal", func(t *testing.T) {
		router := gin.New()
		router.GET("/v1/me", NewAuthHandler(&mockAuthUsecase{}).Me)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/v1/me", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
