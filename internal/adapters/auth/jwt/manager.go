// Package jwt emite y verifica access tokens HS256. Implementa
// auth.TokenIssuer y auth.AuthVerifier.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"animal-registry/internal/ports/auth"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const tokenType = "bearer"

type claims struct {
	UserID string `json:"uid,omitempty"`
	jwtlib.RegisteredClaims
}

type Config struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

var (
	_ auth.TokenIssuer  = (*Manager)(nil)
	_ auth.AuthVerifier = (*Manager)(nil)
)

func NewManager(cfg Config) *Manager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Manager{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// Issue firma un token cuyo subject es el username.
func (m *Manager) Issue(_ context.Context, c auth.Claims) (auth.Token, error) {
	now := m.now()
	exp := now.Add(m.ttl)

	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims{
		UserID: c.UserID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   c.Username,
			Issuer:    m.issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(exp),
		},
	})

	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return auth.Token{}, fmt.Errorf("sign token: %w", err)
	}
	return auth.Token{AccessToken: signed, TokenType: tokenType, ExpiresAt: exp}, nil
}

func (m *Manager) Verify(_ context.Context, token string) (auth.Claims, error) {
	var c claims
	_, err := jwtlib.ParseWithClaims(token, &c, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return auth.Claims{}, ErrExpiredToken
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{UserID: c.UserID, Username: c.Subject}, nil
}
