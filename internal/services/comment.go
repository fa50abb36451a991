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
	"helpdesk-system/pkg/utils"
)

type CommentService struct {
	commentRepo repositories.CommentRepositoryInterface
	ticketRepo  repositories.TicketRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	bus         *eventbus.Bus
	logger      *zap.Logger
}

func NewCommentService(commentRepo repositories.CommentRepositoryInterface, ticketRepo repositories.TicketRepositoryInterface, userRepo repositories.UserRepositoryInterface, bus *eventbus.Bus, logger *zap.Logger) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		ticketRepo:  ticketRepo,
		userRepo:    userRepo,
		bus:         bus,
		logger:      logger,
	}
}

func (s *CommentService) actor(ctx context.Context) (*entities.User, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.Unauthenticated(err.Error())
	}
	return s.userRepo.FindUser(ctx, userID)
}

func (s *CommentService) GetCommentsByTicket(ctx context.Context, ticketID uint64) ([]entities.Comment, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	ticket, err := s.ticketRepo.FindTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	// Комментарии видны тем же, кому видна заявка
	if err := authz.CanViewTicket(actor, ticket); err != nil {
		return nil, err
	}
	return s.commentRepo.GetCommentsByTicket(ctx, ticketID)
}

func (s *CommentService) CreateComment(ctx context.Context, ticketID uint64, payload dto.CreateCommentDTO) (*entities.Comment, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	ticket, err := s.ticketRepo.FindTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanViewTicket(actor, ticket); err != nil {
		return nil, err
	}

	comment := entities.Comment{
		TicketID: ticketID,
		AuthorID: actor.ID,
		Content:  payload.Content,
	}
	created, err := s.commentRepo.CreateComment(ctx, comment)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.TicketCommentAddedEvent{Ticket: *ticket, Comment: *created, Actor: *actor})
	return created, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, id uint64, payload dto.UpdateCommentDTO) (*entities.Comment, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.FindComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Can(actor, authz.CommentsUpdate, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.UpdateComment(ctx, id, payload.Content)
}

func (s *CommentService) DeleteComment(ctx context.Context, id uint64) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return err
	}
	comment, err := s.commentRepo.FindComment(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Can(actor, authz.CommentsDelete, comment); err != nil {
		return err
	}
	return s.commentRepo.DeleteComment(ctx, id)
}
