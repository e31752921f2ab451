package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/auth"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/user"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error {
	f.users[u.ID] = u
	return nil
}

func testUser(t *testing.T, password string) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return user.User{
		ID:           "u-1",
		Name:         "Site Admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
		IsActive:     true,
	}
}

func newTestService(repo *fakeUserRepo) auth.AuthService {
	return NewAuthService(repo, jwt.NewJWTService("test-secret", "15m", "168h"))
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc := newTestService(newFakeUserRepo(testUser(t, "hunter22")))

	result, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "admin@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "u-1", result.UserID)
	assert.Equal(t, string(user.RoleAdmin), result.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(newFakeUserRepo(testUser(t, "hunter22")))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "admin@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmailIndistinguishableFromWrongPassword(t *testing.T) {
	svc := newTestService(newFakeUserRepo(testUser(t, "hunter22")))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "nobody@example.com", Password: "hunter22",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	u := testUser(t, "hunter22")
	u.IsActive = false
	svc := newTestService(newFakeUserRepo(u))

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "admin@example.com", Password: "hunter22",
	})
	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := newTestService(newFakeUserRepo(testUser(t, "hunter22")))

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "admin@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The presented refresh token is single-use.
	_, err = svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc := newTestService(newFakeUserRepo(testUser(t, "hunter22")))

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "admin@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	svc.Logout(context.Background(), login.RefreshToken)

	_, err = svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newTestService(newFakeUserRepo(testUser(t, "hunter22")))

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email: "admin@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
