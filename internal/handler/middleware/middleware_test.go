//go:build unit

package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"sitehub/internal/domain/user"
	"sitehub/internal/handler/middleware"
	"sitehub/internal/pkg/config"
	"sitehub/internal/pkg/jwt"
	"sitehub/internal/usecase"
	"sitehub/tests/common/authtest"
	"sitehub/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *authtest.JWTHelper) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	validator := usecase.NewTokenValidator(jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer))
	auth := middleware.NewAuthMiddleware(validator)

	r := gin.New()
	r.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "role": role.String()})
	})
	r.POST("/dispatch", auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleOperator), func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})
	return r, authtest.NewJWTHelper(cfg.JWT)
}

func TestRequireAuth(t *testing.T) {
	r, tokens := newAuthRouter(t)

	t.Run("bearer header", func(t *testing.T) {
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, tokens.GenerateToken(t, "u1", user.RoleViewer))

		var body struct {
			UserID string `json:"user_id"`
			Role   string `json:"role"`
		}
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, "u1", body.UserID)
		assert.Equal(t, "viewer", body.Role)
	})

	t.Run("access_token query parameter", func(t *testing.T) {
		token := tokens.GenerateToken(t, "u2", user.RoleAdmin)
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/me?access_token="+token, nil, "")
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)
	})

	testCases := []struct {
		name  string
		token string
		msg   string
	}{
		{name: "missing token", token: "", msg: "Access token required"},
		{name: "garbage token", token: "not-a-jwt", msg: "Invalid or expired token"},
		{name: "expired token", token: tokens.CreateExpiredToken(t, "u1", user.RoleViewer), msg: "Invalid or expired token"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, tc.token)
			httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, tc.msg)
		})
	}
}

func TestRequireRoleAtLeast(t *testing.T) {
	r, tokens := newAuthRouter(t)

	testCases := []struct {
		role       user.Role
		expectCode int
	}{
		{role: user.RoleViewer, expectCode: http.StatusForbidden},
		{role: user.RoleOperator, expectCode: http.StatusAccepted},
		{role: user.RoleAdmin, expectCode: http.StatusAccepted},
	}
	for _, tc := range testCases {
		t.Run(tc.role.String(), func(t *testing.T) {
			rec := httptest.PerformRequest(t, r, http.MethodPost, "/dispatch", nil, tokens.GenerateToken(t, "u1", tc.role))
			assert.Equal(t, tc.expectCode, rec.Code)
		})
	}
}

func TestLoggingMiddlewareRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := gin.New()
	r.Use(middleware.LoggingMiddleware(logger, config.NewTestConfig().Log))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})

	t.Run("echoes incoming id", func(t *testing.T) {
		rec := httptest.PerformRequestWithHeaders(t, r, http.MethodGet, "/ping", nil, "", map[string]string{"X-Request-ID": "abc-123"})
		httptest.AssertHeaders(t, rec, map[string]string{"X-Request-ID": "abc-123"})
		assert.Equal(t, "abc-123", rec.Body.String())
	})

	t.Run("generates id when absent or oversized", func(t *testing.T) {
		for _, incoming := range []string{"", strings.Repeat("x", 65)} {
			rec := httptest.PerformRequestWithHeaders(t, r, http.MethodGet, "/ping", nil, "", map[string]string{"X-Request-ID": incoming})
			id := rec.Header().Get("X-Request-ID")
			assert.NotEmpty(t, id)
			assert.NotEqual(t, incoming, id)
			assert.Equal(t, id, rec.Body.String())
		}
	})
}
