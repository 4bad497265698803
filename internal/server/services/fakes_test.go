package services

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/skilltrackhq/backend/internal/common"
	"github.com/skilltrackhq/backend/internal/dbx"
	"github.com/skilltrackhq/backend/internal/server/models"
	usersrepo "github.com/skilltrackhq/backend/internal/server/repositories/users"
)

// --- shared fakes ---

// fakeUsersRepo is an in-memory users.Repository so service tests can run
// whole lifecycle scenarios against real state transitions.
type fakeUsersRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by id

	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, common.ErrorConflict
		}
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	f.users[u.ID] = &cp
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) SetOTP(ctx context.Context, id string, code string, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.OTP = &code
	u.OTPExpiry = &expiry
	return nil
}

func (f *fakeUsersRepo) MarkVerified(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.EmailVerified = true
	u.OTP = nil
	u.OTPExpiry = nil
	return nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id string, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Password = hash
	return nil
}

func (f *fakeUsersRepo) ResetPassword(ctx context.Context, id string, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Password = hash
	u.OTP = nil
	u.OTPExpiry = nil
	return nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUsersRepo) ListByScore(ctx context.Context, limit, offset int) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		all = append(all, &cp)
	}
	// insertion sort by score desc; the fake holds few users
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j].Score > all[j-1].Score; j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeUsersRepo) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

// setUser seeds a record directly, bypassing Register.
func (f *fakeUsersRepo) setUser(u *models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.users[u.ID] = &cp
}

type fakeRepoManager struct {
	u *fakeUsersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }

// fakeMailer records sent notifications.
type fakeMailer struct {
	mu         sync.Mutex
	verifyTo   []string
	verifyCode []string
	resetTo    []string
	resetCode  []string
	sendErr    error
}

func (m *fakeMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.verifyTo = append(m.verifyTo, to)
	m.verifyCode = append(m.verifyCode, code)
	return nil
}

func (m *fakeMailer) SendPasswordReset(ctx context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.resetTo = append(m.resetTo, to)
	m.resetCode = append(m.resetCode, code)
	return nil
}

func (m *fakeMailer) lastVerifyCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.verifyCode) == 0 {
		t.Fatal("no verification mail was sent")
	}
	return m.verifyCode[len(m.verifyCode)-1]
}

func (m *fakeMailer) lastResetCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.resetCode) == 0 {
		t.Fatal("no reset mail was sent")
	}
	return m.resetCode[len(m.resetCode)-1]
}

// newSQLMockDB returns a mock DB for the transactional service methods.
func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}
