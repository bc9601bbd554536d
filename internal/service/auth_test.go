package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookvault/bookvault-go/internal/crypto"
	"github.com/bookvault/bookvault-go/internal/model"
	"github.com/bookvault/bookvault-go/internal/repository"
)

const testSecret = "test-secret"

var testHashParams = crypto.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func newTestStore(t *testing.T) repository.Store {
	t.Helper()
	store, err := repository.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func newTestAuthService(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()
	repo := repository.NewUserRepository(newTestStore(t))
	return NewAuthService(repo, testSecret, time.Hour, testHashParams), repo
}

func TestRegister_EmptyEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), model.CreateUserRequest{Password: "password123"})

	require.ErrorIs(t, err, ErrEmailRequired)
}

func TestRegister_EmptyPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), model.CreateUserRequest{Email: "test@example.com"})

	require.ErrorIs(t, err, ErrPasswordRequired)
}

func TestRegister_StoresHashNotPassword(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, model.CreateUserRequest{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	require.Equal(t, "a@x.com", resp.Email)

	stored, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, resp.ID, stored.ID)
	require.NotEqual(t, "p", stored.Password)

	ok, err := crypto.VerifyPassword("p", stored.Password)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, model.CreateUserRequest{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, model.CreateUserRequest{Email: "a@x.com", Password: "other"})
	require.ErrorIs(t, err, ErrEmailTaken)
	require.Equal(t, 1, repo.Count(ctx))
}

func TestRegister_UniqueIDs(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	a, err := svc.Register(ctx, model.CreateUserRequest{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	b, err := svc.Register(ctx, model.CreateUserRequest{Email: "b@x.com", Password: "p"})
	require.NoError(t, err)

	require.NotEqual(t, a.ID, b.ID)
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, model.CreateUserRequest{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	token, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	claims, err := crypto.ValidateToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.ID)
	require.Equal(t, "a@x.com", claims.Email)
	require.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	_, err = crypto.ValidateToken(token, "some-other-secret")
	require.ErrorIs(t, err, crypto.ErrInvalidToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, model.CreateUserRequest{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  model.LoginRequest
	}{
		{name: "wrong password", req: model.LoginRequest{Email: "a@x.com", Password: "wrong"}},
		{name: "unknown email", req: model.LoginRequest{Email: "b@x.com", Password: "p"}},
		{name: "email case differs", req: model.LoginRequest{Email: "A@x.com", Password: "p"}},
		{name: "empty", req: model.LoginRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.req)
			require.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestLogin_UnusableStoredHash(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, model.User{ID: "legacy", Email: "old@x.com", Password: "plaintext"}))

	_, err := svc.Login(ctx, model.LoginRequest{Email: "old@x.com", Password: "plaintext"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUser(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, model.CreateUserRequest{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user, got)

	_, err = svc.GetUser(ctx, "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}
