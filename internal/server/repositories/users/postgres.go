package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/skilltrackhq/backend/internal/common"
	"github.com/skilltrackhq/backend/internal/dbx"
	"github.com/skilltrackhq/backend/internal/server/models"
)

// pgUniqueViolation is the Postgres error code for unique constraint violations.
const pgUniqueViolation = "23505"

const userColumns = `id, name, email, password, age, dob, reason, score, total_test_taken, current_track, email_verified, otp, otp_expiry, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var otp sql.NullString
	var otpExpiry sql.NullTime

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password,
		&user.Age, &user.DOB, &user.Reason, &user.Score, &user.TotalTestTaken,
		&user.CurrentTrack, &user.EmailVerified, &otp, &otpExpiry,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if otp.Valid {
		user.OTP = &otp.String
	}
	if otpExpiry.Valid {
		t := otpExpiry.Time
		user.OTPExpiry = &t
	}

	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, name, email, password, age, dob, reason, current_track)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.Password,
		user.Age, user.DOB, user.Reason, user.CurrentTrack).
		Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE lower(email) = lower($1)
		 `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE id = $1
		 `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// SetOTP stores a fresh pending code, overwriting whatever code was there.
func (r *PostgresRepository) SetOTP(ctx context.Context, id string, code string, expiry time.Time) error {
	query :=
		`UPDATE users SET otp = $2, otp_expiry = $3, updated_at = now()
		 WHERE id = $1
		 `

	return r.exec(ctx, query, id, code, expiry)
}

// MarkVerified flips the verified flag and clears the pending code pair.
func (r *PostgresRepository) MarkVerified(ctx context.Context, id string) error {
	query :=
		`UPDATE users SET email_verified = true, otp = NULL, otp_expiry = NULL, updated_at = now()
		 WHERE id = $1
		 `

	return r.exec(ctx, query, id)
}

// UpdatePassword replaces the stored hash.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	query :=
		`UPDATE users SET password = $2, updated_at = now()
		 WHERE id = $1
		 `

	return r.exec(ctx, query, id, passwordHash)
}

// ResetPassword replaces the stored hash and clears the pending code pair in
// one statement, so a reset code cannot be replayed.
func (r *PostgresRepository) ResetPassword(ctx context.Context, id string, passwordHash string) error {
	query :=
		`UPDATE users SET password = $2, otp = NULL, otp_expiry = NULL, updated_at = now()
		 WHERE id = $1
		 `

	return r.exec(ctx, query, id, passwordHash)
}

// Delete hard-deletes the record.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`

	return r.exec(ctx, query, id)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// ListByScore returns a page of users ordered by score descending.
func (r *PostgresRepository) ListByScore(ctx context.Context, limit, offset int) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 ORDER BY score DESC, created_at ASC
		 LIMIT $1 OFFSET $2
		 `

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		user := &models.User{}
		var otp sql.NullString
		var otpExpiry sql.NullTime

		err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Password,
			&user.Age, &user.DOB, &user.Reason, &user.Score, &user.TotalTestTaken,
			&user.CurrentTrack, &user.EmailVerified, &otp, &otpExpiry,
			&user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		if otp.Valid {
			user.OTP = &otp.String
		}
		if otpExpiry.Valid {
			t := otpExpiry.Time
			user.OTPExpiry = &t
		}

		result = append(result, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Count returns the total number of users.
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}
