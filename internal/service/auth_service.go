package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"surveygen/internal/domain"
	"surveygen/internal/dto"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// AuthService issues and validates access tokens.
type AuthService interface {
	// CreateToken signs an access token for the user.
	CreateToken(user *domain.User) (string, error)
	// ValidateToken parses and verifies a token, returning its claims.
	// It returns ErrTokenExpired or ErrTokenInvalid on failure.
	ValidateToken(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

type authService struct {
	signingKey     []byte
	accessTokenTTL time.Duration
}

// NewAuthService creates an AuthService with a random process-lifetime
// signing key. Restarting the server invalidates all outstanding tokens,
// which matches the token TTL model: tokens are short-lived and clients
// re-login.
func NewAuthService(accessTokenTTL time.Duration) (AuthService, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}
	return &authService{
		signingKey:     key,
		accessTokenTTL: accessTokenTTL,
	}, nil
}

func (s *authService) CreateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := &dto.AuthClaims{
		UserID:      user.ID,
		Authorities: user.Roles,
		Email:       user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	claims := &dto.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
