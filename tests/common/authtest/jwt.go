//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"sitehub/internal/domain/user"
	"sitehub/internal/pkg/config"
	"sitehub/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the identity provider would.
type JWTHelper struct {
	service *jwt.Service
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{service: jwt.NewService(cfg.Secret, cfg.Issuer)}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID string, role user.Role) string {
	t.Helper()
	token, err := h.service.Sign(userID, role.String(), time.Hour)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID string, role user.Role) string {
	t.Helper()
	token, err := h.service.Sign(userID, role.String(), -time.Minute)
	require.NoError(t, err)
	return token
}
