package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"helpdesk-system/internal/authz"
	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/events"
	"helpdesk-system/internal/repositories"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/eventbus"
	"helpdesk-system/pkg/types"
	"helpdesk-system/pkg/utils"
)

type UserService struct {
	userRepo repositories.UserRepositoryInterface
	bus      *eventbus.Bus
	logger   *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, bus *eventbus.Bus, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, bus: bus, logger: logger}
}

func (s *UserService) actor(ctx context.Context) (*entities.User, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.Unauthenticated(err.Error())
	}
	return s.userRepo.FindUser(ctx, userID)
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	return s.userRepo.GetUsers(ctx, filter)
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	return s.userRepo.FindUser(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*entities.User, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Can(actor, authz.UsersCreate, nil); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Ошибка при хешировании пароля", zap.Error(err))
		return nil, err
	}

	user := entities.User{
		Fio:          payload.Fio,
		Email:        payload.Email,
		Password:     string(hash),
		Role:         entities.Role(payload.Role),
		DepartmentID: payload.DepartmentID,
	}
	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.UserChangedEvent{User: *created, Action: events.ActionCreated, Actor: *actor})
	return created, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*entities.User, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Can(actor, authz.UsersUpdate, nil); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.UpdateUser(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.UserChangedEvent{User: *updated, Action: events.ActionUpdated, Actor: *actor})
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return err
	}
	target, err := s.userRepo.FindUser(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Can(actor, authz.UsersDelete, target); err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.UserChangedEvent{User: *target, Action: events.ActionDeleted, Actor: *actor})
	return nil
}

// BulkDeleteUsers удаляет пользователей по одному и собирает пофакторный
// результат: отказ по одному id не прерывает обработку остальных.
func (s *UserService) BulkDeleteUsers(ctx context.Context, payload dto.BulkDeleteUsersDTO) ([]dto.BulkDeleteResultDTO, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]dto.BulkDeleteResultDTO, 0, len(payload.IDs))
	for _, id := range payload.IDs {
		result := dto.BulkDeleteResultDTO{ID: id}

		target, err := s.userRepo.FindUser(ctx, id)
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		if err := authz.Can(actor, authz.UsersDelete, target); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		if err := s.userRepo.DeleteUser(ctx, id); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		result.Deleted = true
		results = append(results, result)
		s.bus.Publish(ctx, events.UserChangedEvent{User: *target, Action: events.ActionDeleted, Actor: *actor})
	}
	return results, nil
}
