package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bigbear/lessons-api/internal/core/domain"
)

// TokenTTL is the lifetime of an issued session token.
const TokenTTL = time.Hour

var errEmptySecret = errors.New("auth: signing secret is empty")

// tokenClaims is the JWT payload. "id" and "email" keep the shape clients
// already decode; "sub" mirrors the id.
type tokenClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*TokenManager)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) { m.now = now }
}

func NewTokenManager(secret string, opts ...TokenOption) (*TokenManager, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	m := &TokenManager{secret: []byte(secret), ttl: TokenTTL, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Issue signs claims with an expiry of TokenTTL from now.
func (m *TokenManager) Issue(c domain.Claims) (string, error) {
	now := m.now()
	claims := tokenClaims{
		UserID: c.UserID,
		Email:  c.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify returns the claims of a valid token. Every rejection, whether for
// signature, expiry or format, is reported as domain.ErrInvalidToken.
func (m *TokenManager) Verify(token string) (domain.Claims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return domain.Claims{}, domain.ErrInvalidToken
	}
	return domain.Claims{UserID: claims.UserID, Email: claims.Email}, nil
}
