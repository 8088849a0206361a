package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/uniportal/results-portal-api/internal/models"
	"github.com/uniportal/results-portal-api/pkg/config"
	appErrors "github.com/uniportal/results-portal-api/pkg/errors"
)

// AuthService validates access tokens to establish author identity.
// Issuing tokens and managing credentials happen outside this service.
type AuthService struct {
	secret []byte
}

// NewAuthService constructs the service from JWT configuration.
func NewAuthService(cfg config.JWTConfig) *AuthService {
	return &AuthService{secret: []byte(cfg.Secret)}
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}
