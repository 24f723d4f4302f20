package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

// TokenConfig binds one token purpose to its secret and lifetime.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

type tokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 tokens. Each purpose has its own
// secret, so an access token never verifies as a refresh token and vice
// versa, even before expiry checks.
type TokenService struct {
	configs map[ports.TokenPurpose]TokenConfig
}

func NewTokenService(access, refresh, reset TokenConfig) *TokenService {
	return &TokenService{
		configs: map[ports.TokenPurpose]TokenConfig{
			ports.PurposeAccess:  access,
			ports.PurposeRefresh: refresh,
			ports.PurposeReset:   reset,
		},
	}
}

func (s *TokenService) Issue(user *domain.User, purpose ports.TokenPurpose) (string, error) {
	cfg, ok := s.configs[purpose]
	if !ok || cfg.Secret == "" {
		return "", domain.NewError(domain.KindInternal, "no secret configured for token purpose "+string(purpose))
	}

	now := time.Now().UTC()
	claims := tokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}

func (s *TokenService) Verify(token string, purpose ports.TokenPurpose) (ports.Claims, error) {
	cfg, ok := s.configs[purpose]
	if !ok || cfg.Secret == "" {
		return ports.Claims{}, domain.ErrInvalidToken
	}

	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil || !tkn.Valid {
		return ports.Claims{}, domain.ErrInvalidToken
	}

	return ports.Claims{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
