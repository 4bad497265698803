// Package services contains the server-side business logic. This file
// implements AccountService, which owns the account lifecycle: registration,
// email verification via one-time codes, password change/reset, and deletion.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skilltrackhq/backend/internal/common"
	"github.com/skilltrackhq/backend/internal/cryptox"
	"github.com/skilltrackhq/backend/internal/dbx"
	"github.com/skilltrackhq/backend/internal/otp"
	"github.com/skilltrackhq/backend/internal/server/config"
	"github.com/skilltrackhq/backend/internal/server/mail"
	"github.com/skilltrackhq/backend/internal/server/models"
	"github.com/skilltrackhq/backend/internal/server/repositories/repomanager"
)

// defaultTrack is the track assigned to new accounts.
const defaultTrack = "CSS"

// RegisterParams carries the validated registration payload.
type RegisterParams struct {
	FullName string
	Email    string
	Password string
	Age      int
	DOB      time.Time
	Reason   string
}

// AccountService governs user record transitions. All mutating transitions
// are single-record read-modify-writes; the ones that check state before
// writing run inside a transaction.
type AccountService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	mailer mail.Mailer
	otpTTL time.Duration
}

// NewAccountService constructs an AccountService using repositories, the
// mail collaborator, and server config.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, mailer mail.Mailer, cfg *config.Config) *AccountService {
	return &AccountService{
		db:     db,
		repos:  m,
		mailer: mailer,
		otpTTL: cfg.OTPTTL,
	}
}

// Register creates an unverified user and kicks off OTP delivery. A duplicate
// email yields common.ErrorConflict.
func (s *AccountService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         p.FullName,
		Email:        strings.ToLower(p.Email),
		Password:     hash,
		Age:          p.Age,
		DOB:          p.DOB,
		Reason:       p.Reason,
		CurrentTrack: defaultTrack,
	}

	repo := s.repos.Users(s.db)
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	if err := s.issueOTP(ctx, user, verificationCode); err != nil {
		return nil, err
	}

	return user, nil
}

// VerifyEmail transitions an unverified user to verified when the presented
// code matches the pending one and has not expired. Success clears the code
// pair; a second attempt with the same code fails with ErrorConflict because
// the user is already verified.
func (s *AccountService) VerifyEmail(ctx context.Context, email, code string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)

		user, err := repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}

		if user.EmailVerified {
			return common.ErrorConflict
		}
		if user.OTP == nil || *user.OTP != code {
			return common.ErrOTPMismatch
		}
		if otp.Expired(user.OTPExpiry, time.Now()) {
			return common.ErrOTPExpired
		}

		return repo.MarkVerified(ctx, user.ID)
	})
}

// ResendCode re-issues the verification code for an unverified user. The
// previous pending code is overwritten and therefore invalidated.
func (s *AccountService) ResendCode(ctx context.Context, email string) error {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return common.ErrorConflict
	}

	return s.issueOTP(ctx, user, verificationCode)
}

// ChangePassword replaces the stored hash after the user re-proves the old
// password. Only verified users may change their password.
func (s *AccountService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)

		user, err := repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if !user.EmailVerified {
			return common.ErrorUnauthorized
		}

		ok, err := cryptox.VerifyPassword(user.Password, oldPassword)
		if err != nil {
			return common.ErrorInternal
		}
		if !ok {
			return common.ErrorUnauthorized
		}

		hash, err := cryptox.HashPassword(newPassword)
		if err != nil {
			return common.ErrorInternal
		}

		return repo.UpdatePassword(ctx, user.ID, hash)
	})
}

// InitPasswordReset issues a fresh reset code and mails it. A fresh code is
// always generated, so the emailed code is valid even when no verification
// code was pending.
func (s *AccountService) InitPasswordReset(ctx context.Context, email string) error {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	return s.issueOTP(ctx, user, resetCode)
}

// CompletePasswordReset replaces the hash when the presented reset code
// matches and has not expired, and clears the code pair so the code cannot
// be replayed.
func (s *AccountService) CompletePasswordReset(ctx context.Context, email, code, newPassword string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)

		user, err := repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}

		if user.OTP == nil || *user.OTP != code {
			return common.ErrOTPMismatch
		}
		if otp.Expired(user.OTPExpiry, time.Now()) {
			return common.ErrOTPExpired
		}

		hash, err := cryptox.HashPassword(newPassword)
		if err != nil {
			return common.ErrorInternal
		}

		return repo.ResetPassword(ctx, user.ID, hash)
	})
}

// DeleteAccount hard-deletes the record after the user re-proves the
// password.
func (s *AccountService) DeleteAccount(ctx context.Context, id, password string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Users(tx)

		user, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		ok, err := cryptox.VerifyPassword(user.Password, password)
		if err != nil {
			return common.ErrorInternal
		}
		if !ok {
			return common.ErrorUnauthorized
		}

		return repo.Delete(ctx, user.ID)
	})
}

type codePurpose int

const (
	verificationCode codePurpose = iota
	resetCode
)

// issueOTP persists a fresh code+expiry on the user record and sends the
// notification. The persist and the send are deliberately not transactional:
// if delivery fails the stored code stays valid and the caller sees the
// send error.
func (s *AccountService) issueOTP(ctx context.Context, user *models.User, purpose codePurpose) error {
	code, expiresAt, err := otp.New(s.otpTTL)
	if err != nil {
		return common.ErrorInternal
	}

	repo := s.repos.Users(s.db)
	if err := repo.SetOTP(ctx, user.ID, code, expiresAt); err != nil {
		return err
	}

	if purpose == resetCode {
		return s.mailer.SendPasswordReset(ctx, user.Email, code)
	}
	return s.mailer.SendVerificationCode(ctx, user.Email, code)
}
