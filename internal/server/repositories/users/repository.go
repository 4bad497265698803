package users

import (
	"context"
	"time"

	"github.com/skilltrackhq/backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	SetOTP(ctx context.Context, id string, code string, expiry time.Time) error
	MarkVerified(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	ResetPassword(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) error
	ListByScore(ctx context.Context, limit, offset int) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}
