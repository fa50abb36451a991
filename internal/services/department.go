package services

import (
	"context"

	"go.uber.org/zap"

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

type DepartmentService struct {
	departmentRepo repositories.DepartmentRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	bus            *eventbus.Bus
	logger         *zap.Logger
}

func NewDepartmentService(departmentRepo repositories.DepartmentRepositoryInterface, userRepo repositories.UserRepositoryInterface, bus *eventbus.Bus, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
		bus:            bus,
		logger:         logger,
	}
}

func (s *DepartmentService) actor(ctx context.Context) (*entities.User, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.Unauthenticated(err.Error())
	}
	return s.userRepo.FindUser(ctx, userID)
}

func (s *DepartmentService) GetDepartments(ctx context.Context, filter types.Filter) ([]entities.Department, uint64, error) {
	return s.departmentRepo.GetDepartments(ctx, filter)
}

func (s *DepartmentService) GetDepartmentStats(ctx context.Context) ([]dto.DepartmentStatsDTO, error) {
	return s.departmentRepo.GetDepartmentStats(ctx)
}

func (s *DepartmentService) FindDepartment(ctx context.Context, id uint64) (*entities.Department, error) {
	return s.departmentRepo.FindDepartment(ctx, id)
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*entities.Department, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Can(actor, authz.DepartmentsCreate, nil); err != nil {
		return nil, err
	}

	if payload.ManagerID != nil {
		if _, err := s.userRepo.FindUser(ctx, *payload.ManagerID); err != nil {
			return nil, err
		}
	}

	department := entities.Department{
		Name:      payload.Name,
		ManagerID: payload.ManagerID,
	}
	if payload.Permissions != nil {
		department.Permissions = entities.DepartmentPermissions{
			Tickets:   payload.Permissions.Tickets,
			Equipment: payload.Permissions.Equipment,
			Users:     payload.Permissions.Users,
			Reports:   payload.Permissions.Reports,
		}
	}

	created, err := s.departmentRepo.CreateDepartment(ctx, department)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.DepartmentChangedEvent{Department: *created, Action: events.ActionCreated, Actor: *actor})
	return created, nil
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, id uint64, payload dto.UpdateDepartmentDTO) (*entities.Department, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Can(actor, authz.DepartmentsUpdate, nil); err != nil {
		return nil, err
	}

	updated, err := s.departmentRepo.UpdateDepartment(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.DepartmentChangedEvent{Department: *updated, Action: events.ActionUpdated, Actor: *actor})
	return updated, nil
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, id uint64) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return err
	}
	if err := authz.Can(actor, authz.DepartmentsDelete, nil); err != nil {
		return err
	}
	department, err := s.departmentRepo.FindDepartment(ctx, id)
	if err != nil {
		return err
	}

	// Удаление блокируется, пока на департамент ссылаются пользователи
	// или оборудование
	users, equipment, err := s.departmentRepo.CountDependents(ctx, id)
	if err != nil {
		return err
	}
	if users > 0 || equipment > 0 {
		return apperrors.Conflict("нельзя удалить департамент: есть связанные пользователи или оборудование")
	}

	if err := s.departmentRepo.DeleteDepartment(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.DepartmentChangedEvent{Department: *department, Action: events.ActionDeleted, Actor: *actor})
	return nil
}
