package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiguelRodac/api-books/internal/domains/user/model"
	"github.com/MiguelRodac/api-books/internal/shared/apperror"
	"github.com/MiguelRodac/api-books/pkg/jwt"
)

// fakeUserRepo là in-memory credential store cho service tests
type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return model.ErrUserNotFound
	}
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// fakeHasher tránh bcrypt cost trong tests
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func newTestService(repo *fakeUserRepo) Service {
	return NewUserService(repo, jwt.NewManager("test-secret", time.Hour), fakeHasher{})
}

func registerTestUser(t *testing.T, svc Service) *model.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Nickname: "reader",
		Email:    "reader@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return resp
}

// ========================================
// REGISTER
// ========================================

func TestRegisterMintsToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	resp := registerTestUser(t, svc)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "reader@example.com", resp.User.Email)
	// Password never stored in plain
	assert.Equal(t, "hashed:correct-horse", repo.users[resp.User.ID].Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	registerTestUser(t, svc)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Nickname: "other",
		Email:    "reader@example.com",
		Password: "another-pass",
	})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Nickname: "x",
		Email:    "bad",
		Password: "short",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

// ========================================
// LOGIN
// ========================================

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	registerTestUser(t, svc)

	token, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "reader@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	registerTestUser(t, svc)

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "reader@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Password does not match", appErr.Message)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever-pass",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))

	// Không expose email có tồn tại hay không
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Invalid credentials", appErr.Message)
}

// ========================================
// REFRESH
// ========================================

func TestRefreshMintsFreshToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	resp := registerTestUser(t, svc)

	token, err := svc.Refresh(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRefreshDeletedSubjectIsUnauthorized(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	resp := registerTestUser(t, svc)

	// Subject bị xóa giữa verify và refresh
	require.NoError(t, svc.Delete(context.Background(), resp.User.ID))

	_, err := svc.Refresh(context.Background(), resp.User.ID)
	require.Error(t, err)
	// 401, không phải 404 - đây là credential failure
	assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
}

// ========================================
// CRUD
// ========================================

func TestUpdateUserRehashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	resp := registerTestUser(t, svc)

	newPass := "new-password"
	updated, err := svc.Update(context.Background(), resp.User.ID, model.UpdateUserRequest{
		Password: &newPass,
	})
	require.NoError(t, err)
	assert.Equal(t, "hashed:new-password", updated.Password)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
