package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"helpdesk-system/internal/dto"
)

type ReportRepositoryInterface interface {
	GetTicketReport(ctx context.Context) ([]dto.TicketReportRowDTO, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
}

func NewReportRepository(storage *pgxpool.Pool) ReportRepositoryInterface {
	return &ReportRepository{storage: storage}
}

func (r *ReportRepository) GetTicketReport(ctx context.Context) ([]dto.TicketReportRowDTO, error) {
	query := `SELECT t.id, t.title, t.status, t.priority,
		creator.fio,
		COALESCE(assignee.fio, ''),
		COALESCE(d.name, ''),
		t.created_at
		FROM tickets t
		JOIN users creator ON creator.id = t.created_by
		LEFT JOIN users assignee ON assignee.id = t.assigned_to
		LEFT JOIN departments d ON d.id = t.department_id
		ORDER BY t.id DESC`
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]dto.TicketReportRowDTO, 0)
	for rows.Next() {
		var row dto.TicketReportRowDTO
		if err := rows.Scan(&row.ID, &row.Title, &row.Status, &row.Priority,
			&row.Creator, &row.Assignee, &row.Department, &row.CreatedAt); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
