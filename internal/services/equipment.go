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

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	bus           *eventbus.Bus
	logger        *zap.Logger
}

func NewEquipmentService(equipmentRepo repositories.EquipmentRepositoryInterface, userRepo repositories.UserRepositoryInterface, bus *eventbus.Bus, logger *zap.Logger) *EquipmentService {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		bus:           bus,
		logger:        logger,
	}
}

func (s *EquipmentService) actor(ctx context.Context) (*entities.User, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.Unauthenticated(err.Error())
	}
	return s.userRepo.FindUser(ctx, userID)
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	return s.equipmentRepo.GetEquipments(ctx, filter)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return s.equipmentRepo.FindEquipment(ctx, id)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Can(actor, authz.EquipmentCreate, nil); err != nil {
		return nil, err
	}

	status := entities.EquipmentAvailable
	if payload.Status != nil {
		status = entities.EquipmentStatus(*payload.Status)
	}

	equipment := entities.Equipment{
		Name:         payload.Name,
		SerialNumber: payload.SerialNumber,
		Status:       status,
		DepartmentID: payload.DepartmentID,
	}
	created, err := s.equipmentRepo.CreateEquipment(ctx, equipment)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.EquipmentChangedEvent{Equipment: *created, Action: events.ActionCreated, Actor: *actor})
	return created, nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Can(actor, authz.EquipmentUpdate, nil); err != nil {
		return nil, err
	}

	updated, err := s.equipmentRepo.UpdateEquipment(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.EquipmentChangedEvent{Equipment: *updated, Action: events.ActionUpdated, Actor: *actor})
	return updated, nil
}

// AssignEquipment назначает оборудование пользователю либо снимает
// назначение (user_id = null). Статус выводится из назначения: занято -
// in_use, свободно - available; оба поля пишутся одним запросом.
func (s *EquipmentService) AssignEquipment(ctx context.Context, id uint64, payload dto.AssignEquipmentDTO) (*entities.Equipment, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Can(actor, authz.EquipmentAssign, nil); err != nil {
		return nil, err
	}
	if _, err := s.equipmentRepo.FindEquipment(ctx, id); err != nil {
		return nil, err
	}

	status := entities.EquipmentAvailable
	if payload.UserID != nil {
		if _, err := s.userRepo.FindUser(ctx, *payload.UserID); err != nil {
			return nil, err
		}
		status = entities.EquipmentInUse
	}

	updated, err := s.equipmentRepo.UpdateAssignment(ctx, id, payload.UserID, status)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.EquipmentChangedEvent{Equipment: *updated, Action: events.ActionUpdated, Actor: *actor})
	return updated, nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return err
	}
	if err := authz.Can(actor, authz.EquipmentDelete, nil); err != nil {
		return err
	}
	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return err
	}

	// Оборудование с привязанными заявками не удаляем, иначе потеряется
	// история
	tickets, err := s.equipmentRepo.CountTicketsForEquipment(ctx, id)
	if err != nil {
		return err
	}
	if tickets > 0 {
		return apperrors.Conflict("нельзя удалить оборудование: на него ссылаются заявки")
	}

	if err := s.equipmentRepo.DeleteEquipment(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.EquipmentChangedEvent{Equipment: *equipment, Action: events.ActionDeleted, Actor: *actor})
	return nil
}
