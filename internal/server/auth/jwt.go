// Package auth signs and verifies the JWT bearer credentials used by the
// session layer. Access and refresh tokens are HS256-signed with independent
// secrets, so compromise of one class cannot forge the other.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skilltrackhq/backend/internal/common"
)

// TokenKind selects which secret and TTL a token is issued/verified with.
type TokenKind int

const (
	AccessToken TokenKind = iota
	RefreshToken
)

// Claims carries the registered claims plus the authenticated user's
// identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// TokenPair bundles a short-lived access token and a longer-lived refresh
// token. Neither is persisted server-side.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Tokens issues and verifies both token kinds.
type Tokens struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokens(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Tokens {
	return &Tokens{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// TTL returns the validity duration for the given token kind. The HTTP layer
// uses it for cookie expirations.
func (t *Tokens) TTL(kind TokenKind) time.Duration {
	if kind == AccessToken {
		return t.accessTTL
	}
	return t.refreshTTL
}

func (t *Tokens) secret(kind TokenKind) []byte {
	if kind == AccessToken {
		return t.accessSecret
	}
	return t.refreshSecret
}

// Issue signs a token of the given kind carrying the user's id and email.
func (t *Tokens) Issue(kind TokenKind, userID, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL(kind))),
		},
		UserID: userID,
		Email:  email,
	})

	return token.SignedString(t.secret(kind))
}

// IssuePair mints a fresh access+refresh pair for the user.
func (t *Tokens) IssuePair(userID, email string) (*TokenPair, error) {
	access, err := t.Issue(AccessToken, userID, email)
	if err != nil {
		return nil, err
	}
	refresh, err := t.Issue(RefreshToken, userID, email)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify parses and validates a token of the given kind and returns its
// claims. Any failure (bad signature, malformed token, wrong kind's secret,
// expired) yields common.ErrInvalidToken.
func (t *Tokens) Verify(kind TokenKind, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret(kind), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
