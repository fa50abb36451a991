package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/events"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/pkg/config"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/eventbus"
	"helpdesk-system/pkg/service"
	"helpdesk-system/pkg/utils"
)

const (
	loginAttemptsKeyFmt = "auth:login:attempts:%s"
	refreshTokenKeyFmt  = "auth:refresh:%d:%s"
)

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	jwtSvc    service.JWTService
	cfg       *config.Config
	bus       *eventbus.Bus
	logger    *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepositoryInterface, cacheRepo repositories.CacheRepositoryInterface, jwtSvc service.JWTService, cfg *config.Config, bus *eventbus.Bus, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		jwtSvc:    jwtSvc,
		cfg:       cfg,
		bus:       bus,
		logger:    logger,
	}
}

// Login проверяет пару email/пароль. После серии неудачных попыток вход
// по этому email временно блокируется.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	attemptsKey := fmt.Sprintf(loginAttemptsKeyFmt, payload.Email)

	locked, err := s.isLockedOut(ctx, attemptsKey)
	if err != nil {
		s.logger.Error("Ошибка при проверке блокировки входа", zap.Error(err))
	}
	if locked {
		return nil, apperrors.ErrTooManyAttempts
	}

	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.registerFailedAttempt(ctx, attemptsKey)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		s.registerFailedAttempt(ctx, attemptsKey)
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.cacheRepo.Del(ctx, attemptsKey); err != nil {
		s.logger.Warn("Не удалось сбросить счётчик попыток входа", zap.Error(err))
	}

	return s.issueTokens(ctx, user)
}

// Refresh меняет refresh-токен на новую пару. Старый токен отзывается:
// повторное использование вернёт ошибку.
func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	key := fmt.Sprintf(refreshTokenKeyFmt, claims.UserID, claims.ID)
	if _, err := s.cacheRepo.Get(ctx, key); err != nil {
		return nil, apperrors.ErrTokenRevoked
	}
	if err := s.cacheRepo.Del(ctx, key); err != nil {
		s.logger.Warn("Не удалось отозвать использованный refresh-токен", zap.Error(err))
	}

	user, err := s.userRepo.FindUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, payload dto.RefreshDTO) error {
	claims, err := s.jwtSvc.ValidateToken(payload.RefreshToken)
	if err != nil {
		return apperrors.ErrInvalidToken
	}
	if !claims.IsRefreshToken {
		return apperrors.ErrTokenIsNotRefresh
	}
	return s.cacheRepo.Del(ctx, fmt.Sprintf(refreshTokenKeyFmt, claims.UserID, claims.ID))
}

func (s *AuthService) Me(ctx context.Context) (*entities.User, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.Unauthenticated(err.Error())
	}
	return s.userRepo.FindUser(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, payload dto.UpdateProfileDTO) (*entities.User, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.Unauthenticated(err.Error())
	}

	updated, err := s.userRepo.UpdateProfile(ctx, userID, payload.Fio, payload.Email)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.ProfileUpdatedEvent{User: *updated})
	return updated, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, payload dto.ChangePasswordDTO) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return apperrors.Unauthenticated(err.Error())
	}
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.OldPassword)); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.ProfileUpdatedEvent{User: *user})
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *entities.User) (*dto.TokenPairDTO, error) {
	access, refresh, refreshID, err := s.jwtSvc.GenerateTokens(user.ID, string(user.Role))
	if err != nil {
		s.logger.Error("Ошибка при генерации токенов", zap.Uint64("userId", user.ID), zap.Error(err))
		return nil, err
	}

	// Белый список активных refresh-токенов живёт в Redis
	key := fmt.Sprintf(refreshTokenKeyFmt, user.ID, refreshID)
	if err := s.cacheRepo.Set(ctx, key, "1", s.jwtSvc.GetRefreshTokenTTL()); err != nil {
		s.logger.Error("Не удалось сохранить refresh-токен", zap.Error(err))
		return nil, err
	}

	return &dto.TokenPairDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtSvc.GetAccessTokenTTL().Seconds()),
	}, nil
}

func (s *AuthService) isLockedOut(ctx context.Context, key string) (bool, error) {
	val, err := s.cacheRepo.Get(ctx, key)
	if err != nil {
		return false, nil
	}
	var attempts int
	if _, err := fmt.Sscanf(val, "%d", &attempts); err != nil {
		return false, err
	}
	return attempts >= s.cfg.Auth.MaxLoginAttempts, nil
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, key string) {
	attempts, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("Не удалось увеличить счётчик попыток входа", zap.Error(err))
		return
	}
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, key, s.cfg.Auth.LockoutDuration); err != nil {
			s.logger.Warn("Не удалось выставить TTL для счётчика попыток", zap.Error(err))
		}
	}
}
