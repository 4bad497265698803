package services

import (
	"context"
	"database/sql"

	"github.com/skilltrackhq/backend/internal/common"
	"github.com/skilltrackhq/backend/internal/cryptox"
	"github.com/skilltrackhq/backend/internal/server/auth"
	"github.com/skilltrackhq/backend/internal/server/models"
	"github.com/skilltrackhq/backend/internal/server/repositories/repomanager"
)

// SessionService issues token pairs at login, authenticates access tokens on
// protected requests, and rotates refresh tokens.
type SessionService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	tokens *auth.Tokens
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.Tokens) *SessionService {
	return &SessionService{db: db, repos: m, tokens: tokens}
}

// Tokens exposes the signer for the HTTP layer (cookie TTLs).
func (s *SessionService) Tokens() *auth.Tokens {
	return s.tokens
}

// Login verifies credentials and the verified flag, then mints a fresh
// access+refresh pair. Unverified users always fail with ErrorUnauthorized,
// regardless of password correctness.
func (s *SessionService) Login(ctx context.Context, email, password string) (*auth.TokenPair, *models.User, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	ok, err := cryptox.VerifyPassword(user.Password, password)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}
	if !ok {
		return nil, nil, common.ErrorUnauthorized
	}

	if !user.EmailVerified {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	return pair, user, nil
}

// Authenticate verifies an access token and returns its claims for
// downstream use.
func (s *SessionService) Authenticate(accessToken string) (*auth.Claims, error) {
	return s.tokens.Verify(auth.AccessToken, accessToken)
}

// Refresh validates a refresh token and mints a brand-new pair (rotation on
// every use). The old refresh token is not revoked server-side; it stays
// valid until its own TTL expires.
func (s *SessionService) Refresh(refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokens.Verify(auth.RefreshToken, refreshToken)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	pair, err := s.tokens.IssuePair(claims.UserID, claims.Email)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return pair, nil
}
