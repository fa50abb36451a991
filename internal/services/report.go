package services

import (
	"context"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/repositories"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/utils"
)

type ReportService struct {
	reportRepo repositories.ReportRepositoryInterface
	userRepo   repositories.UserRepositoryInterface
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface, userRepo repositories.UserRepositoryInterface) *ReportService {
	return &ReportService{reportRepo: reportRepo, userRepo: userRepo}
}

// GetTicketReport отдаёт строки сводки по заявкам. Отчёты доступны только
// персоналу.
func (s *ReportService) GetTicketReport(ctx context.Context) ([]dto.TicketReportRowDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.Unauthenticated(err.Error())
	}
	actor, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsStaff() {
		return nil, apperrors.Forbidden("отчёты доступны только персоналу")
	}
	return s.reportRepo.GetTicketReport(ctx)
}
