package service

import (
	"errors"
	"sync"
	"time"

	"github.com/daftarhq/daftar/config"
	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/logger"
	"github.com/daftarhq/daftar/web/session"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

var warnFallbackSecret sync.Once

// AuthService issues and verifies the stateless session tokens. Tokens are
// HS256 JWTs; there is no server-side revocation, a token stays valid until
// its expiry.
type AuthService struct {
	settingService SettingService
}

func (s *AuthService) secret() []byte {
	secret, isFallback := config.GetJWTSecret()
	if isFallback {
		warnFallbackSecret.Do(func() {
			logger.Warning("DAFTAR_JWT_SECRET is not set, using the development fallback secret")
		})
	}
	return []byte(secret)
}

// IssueToken signs a session token for the user with the configured
// lifetime.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	maxAge, err := s.settingService.GetSessionMaxAge()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &session.Claims{
		UserId: user.Id,
		Role:   user.Role,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(maxAge) * time.Minute)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret())
}

// VerifyToken checks signature and expiry. Any failure, malformed input
// included, comes back as ErrInvalidToken.
func (s *AuthService) VerifyToken(token string) (*session.Claims, error) {
	claims := &session.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
