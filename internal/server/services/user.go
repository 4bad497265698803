package services

import (
	"context"
	"database/sql"

	"github.com/skilltrackhq/backend/internal/server/models"
	"github.com/skilltrackhq/backend/internal/server/repositories/repomanager"
)

// UserService serves the read-side user endpoints: profile info and the
// score leaderboard.
type UserService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repos: m}
}

// LeaderboardPage is one page of the score-descending user ranking.
type LeaderboardPage struct {
	Users      []*models.PublicUser `json:"leaderboard"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int64                `json:"totalPages"`
}

// GetInfo returns the user's record without credential fields.
func (s *UserService) GetInfo(ctx context.Context, id string) (*models.PublicUser, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// Leaderboard returns the requested page of users sorted by score
// descending. page and limit are 1-based and must be positive.
func (s *UserService) Leaderboard(ctx context.Context, page, limit int) (*LeaderboardPage, error) {
	repo := s.repos.Users(s.db)

	offset := (page - 1) * limit
	list, err := repo.ListByScore(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]*models.PublicUser, 0, len(list))
	for _, u := range list {
		users = append(users, u.Sanitized())
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return &LeaderboardPage{
		Users:      users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
