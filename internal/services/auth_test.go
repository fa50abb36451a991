package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/pkg/config"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/eventbus"
	"helpdesk-system/pkg/service"
)

func newAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeCacheRepo) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret12345"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := newFakeUserRepo(entities.User{
		ID:       5,
		Email:    "petrova@helpdesk.local",
		Password: string(hash),
		Role:     entities.RoleEmployee,
	})
	cacheRepo := newFakeCacheRepo()

	cfg := &config.Config{
		Auth: config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: time.Minute * 15},
	}
	jwtSvc := service.NewJWTService("test-secret", time.Minute*15, time.Hour, zap.NewNop())

	svc := NewAuthService(userRepo, cacheRepo, jwtSvc, cfg, eventbus.New(zap.NewNop()), zap.NewNop())
	return svc, userRepo, cacheRepo
}

func TestLoginSuccess(t *testing.T) {
	svc, _, _ := newAuthService(t)

	tokens, err := svc.Login(context.Background(), dto.LoginDTO{Email: "petrova@helpdesk.local", Password: "secret12345"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, int64((time.Minute * 15).Seconds()), tokens.ExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "petrova@helpdesk.local", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc, _, _ := newAuthService(t)

	// Несуществующий email неотличим от неверного пароля
	_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "ghost@helpdesk.local", Password: "secret12345"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginLockoutAfterMaxAttempts(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, dto.LoginDTO{Email: "petrova@helpdesk.local", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	// Четвёртая попытка блокируется даже с верным паролем
	_, err := svc.Login(ctx, dto.LoginDTO{Email: "petrova@helpdesk.local", Password: "secret12345"})
	assert.ErrorIs(t, err, apperrors.ErrTooManyAttempts)
}

func TestLoginResetsAttemptsOnSuccess(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _ = svc.Login(ctx, dto.LoginDTO{Email: "petrova@helpdesk.local", Password: "wrong"})
	}
	_, err := svc.Login(ctx, dto.LoginDTO{Email: "petrova@helpdesk.local", Password: "secret12345"})
	require.NoError(t, err)

	// Счётчик сброшен: снова доступны все попытки
	for i := 0; i < 2; i++ {
		_, err = svc.Login(ctx, dto.LoginDTO{Email: "petrova@helpdesk.local", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	tokens, err := svc.Login(ctx, dto.LoginDTO{Email: "petrova@helpdesk.local", Password: "secret12345"})
	require.NoError(t, err)

	fresh, err := svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	// Повторное использование старого refresh-токена отклоняется
	_, err = svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	tokens, err := svc.Login(ctx, dto.LoginDTO{Email: "petrova@helpdesk.local", Password: "secret12345"})
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	tokens, err := svc.Login(ctx, dto.LoginDTO{Email: "petrova@helpdesk.local", Password: "secret12345"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, dto.RefreshDTO{RefreshToken: tokens.RefreshToken}))

	_, err = svc.Refresh(ctx, dto.RefreshDTO{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestChangePasswordChecksOldPassword(t *testing.T) {
	svc, userRepo, _ := newAuthService(t)

	err := svc.ChangePassword(ctxFor(5), dto.ChangePasswordDTO{OldPassword: "wrong", NewPassword: "newsecret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	err = svc.ChangePassword(ctxFor(5), dto.ChangePasswordDTO{OldPassword: "secret12345", NewPassword: "newsecret123"})
	require.NoError(t, err)

	u, err := userRepo.FindUser(context.Background(), 5)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("newsecret123")))
}
