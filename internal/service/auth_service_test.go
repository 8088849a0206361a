package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniportal/results-portal-api/internal/models"
	"github.com/uniportal/results-portal-api/pkg/config"
)

func signTestToken(t *testing.T, secret string, claims *models.JWTClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{Secret: "test-secret"})

	signed := signTestToken(t, "test-secret", &models.JWTClaims{
		UserID:   "user-1",
		Role:     models.RoleExamOfficer,
		FullName: "Registrar",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleExamOfficer, claims.Role)
	assert.Equal(t, "Registrar", claims.FullName)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{Secret: "test-secret"})

	signed := signTestToken(t, "other-secret", &models.JWTClaims{UserID: "user-1"})

	_, err := svc.ValidateToken(signed)
	require.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{Secret: "test-secret"})

	signed := signTestToken(t, "test-secret", &models.JWTClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := svc.ValidateToken(signed)
	require.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{Secret: "test-secret"})
	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
}
