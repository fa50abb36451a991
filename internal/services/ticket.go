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

type TicketService struct {
	ticketRepo repositories.TicketRepositoryInterface
	userRepo   repositories.UserRepositoryInterface
	bus        *eventbus.Bus
	logger     *zap.Logger
}

func NewTicketService(ticketRepo repositories.TicketRepositoryInterface, userRepo repositories.UserRepositoryInterface, bus *eventbus.Bus, logger *zap.Logger) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		bus:        bus,
		logger:     logger,
	}
}

func (s *TicketService) actor(ctx context.Context) (*entities.User, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.Unauthenticated(err.Error())
	}
	return s.userRepo.FindUser(ctx, userID)
}

func (s *TicketService) GetTickets(ctx context.Context, filter types.Filter) ([]entities.Ticket, uint64, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, 0, err
	}

	// Сотрудник видит только собственные заявки
	var createdBy *uint64
	if authz.SeesOnlyOwnTickets(actor) {
		createdBy = &actor.ID
	}
	return s.ticketRepo.GetTickets(ctx, filter, createdBy)
}

func (s *TicketService) FindTicket(ctx context.Context, id uint64) (*entities.Ticket, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	ticket, err := s.ticketRepo.FindTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanViewTicket(actor, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) CreateTicket(ctx context.Context, payload dto.CreateTicketDTO) (*entities.Ticket, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}

	createdBy := actor.ID
	if payload.CreatedBy != nil {
		createdBy = *payload.CreatedBy
	}
	if err := authz.Can(actor, authz.TicketsCreate, createdBy); err != nil {
		return nil, err
	}

	priority := entities.PriorityNormal
	if payload.Priority != nil {
		priority = entities.TicketPriority(*payload.Priority)
	}

	// Департамент-источник по умолчанию наследуется от автора
	departmentID := payload.DepartmentID
	if departmentID == nil {
		departmentID = actor.DepartmentID
	}

	ticket := entities.Ticket{
		Title:              payload.Title,
		Description:        payload.Description,
		Status:             entities.TicketOpen,
		Priority:           priority,
		CreatedBy:          createdBy,
		DepartmentID:       departmentID,
		TargetDepartmentID: payload.TargetDepartmentID,
		EquipmentID:        payload.EquipmentID,
	}

	created, err := s.ticketRepo.CreateTicket(ctx, ticket)
	if err != nil {
		s.logger.Error("Ошибка при создании заявки", zap.Error(err))
		return nil, err
	}

	s.bus.Publish(ctx, events.TicketCreatedEvent{Ticket: *created, Actor: *actor})
	return created, nil
}

func (s *TicketService) UpdateTicket(ctx context.Context, id uint64, payload dto.UpdateTicketDTO) (*entities.Ticket, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	ticket, err := s.ticketRepo.FindTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Can(actor, authz.TicketsUpdate, ticket); err != nil {
		return nil, err
	}

	upd := repositories.TicketUpdate{
		Title:              payload.Title,
		Description:        payload.Description,
		DepartmentID:       payload.DepartmentID,
		TargetDepartmentID: payload.TargetDepartmentID,
		EquipmentID:        payload.EquipmentID,
	}
	statusChanged := false
	oldStatus := ticket.Status
	if payload.Status != nil {
		newStatus := entities.TicketStatus(*payload.Status)
		if newStatus == entities.TicketClosed && oldStatus != entities.TicketClosed {
			// Закрытие через общий update подчиняется правилу закрытия
			if err := authz.Can(actor, authz.TicketsClose, ticket); err != nil {
				return nil, err
			}
		}
		if newStatus != oldStatus {
			statusChanged = true
		}
		upd.Status = &newStatus
	}
	if payload.Priority != nil {
		p := entities.TicketPriority(*payload.Priority)
		upd.Priority = &p
	}

	updated, err := s.ticketRepo.UpdateTicket(ctx, id, upd)
	if err != nil {
		s.logger.Error("Ошибка при обновлении заявки", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	if statusChanged {
		s.bus.Publish(ctx, events.TicketStatusChangedEvent{Ticket: *updated, OldStatus: oldStatus, Actor: *actor})
	}
	return updated, nil
}

func (s *TicketService) AssignTicket(ctx context.Context, id uint64, payload dto.AssignTicketDTO) (*entities.Ticket, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.ticketRepo.FindTicket(ctx, id); err != nil {
		return nil, err
	}

	if payload.UserID == nil {
		if err := authz.Can(actor, authz.TicketsAssign, nil); err != nil {
			return nil, err
		}
		var cleared *uint64
		return s.ticketRepo.UpdateTicket(ctx, id, repositories.TicketUpdate{AssignedTo: &cleared})
	}

	assignee, err := s.userRepo.FindUser(ctx, *payload.UserID)
	if err != nil {
		return nil, err
	}
	if err := authz.Can(actor, authz.TicketsAssign, assignee); err != nil {
		return nil, err
	}

	assigneeID := assignee.ID
	target := &assigneeID
	return s.ticketRepo.UpdateTicket(ctx, id, repositories.TicketUpdate{AssignedTo: &target})
}

func (s *TicketService) CloseTicket(ctx context.Context, id uint64) (*entities.Ticket, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	ticket, err := s.ticketRepo.FindTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Can(actor, authz.TicketsClose, ticket); err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	closed := entities.TicketClosed
	updated, err := s.ticketRepo.UpdateTicket(ctx, id, repositories.TicketUpdate{Status: &closed})
	if err != nil {
		return nil, err
	}

	if oldStatus != entities.TicketClosed {
		s.bus.Publish(ctx, events.TicketStatusChangedEvent{Ticket: *updated, OldStatus: oldStatus, Actor: *actor})
	}
	return updated, nil
}

// EscalateTicket детерминированно поднимает приоритет на одну ступень и
// принудительно переводит заявку в статус escalated.
func (s *TicketService) EscalateTicket(ctx context.Context, id uint64) (*entities.Ticket, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	ticket, err := s.ticketRepo.FindTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Can(actor, authz.TicketsEscalate, ticket); err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	newPriority := entities.EscalatePriority(ticket.Priority)
	escalated := entities.TicketEscalated
	updated, err := s.ticketRepo.UpdateTicket(ctx, id, repositories.TicketUpdate{Status: &escalated, Priority: &newPriority})
	if err != nil {
		return nil, err
	}

	if oldStatus != entities.TicketEscalated {
		s.bus.Publish(ctx, events.TicketStatusChangedEvent{Ticket: *updated, OldStatus: oldStatus, Actor: *actor})
	}
	return updated, nil
}

func (s *TicketService) DeleteTicket(ctx context.Context, id uint64) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return err
	}
	ticket, err := s.ticketRepo.FindTicket(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Can(actor, authz.TicketsDelete, ticket); err != nil {
		return err
	}
	return s.ticketRepo.DeleteTicket(ctx, id)
}
