package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"helpdesk-system/internal/entities"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/types"
)

const ticketTable = "tickets"

const ticketColumns = "id, title, description, status, priority, created_by, assigned_to, department_id, target_department_id, equipment_id, created_at, updated_at"

var ticketAllowedFilterFields = map[string]string{
	"status":        "t.status",
	"priority":      "t.priority",
	"department_id": "t.department_id",
	"assigned_to":   "t.assigned_to",
}

// TicketUpdate - частичное обновление заявки на уровне хранилища. Сервис
// собирает его из DTO после проверки правил.
type TicketUpdate struct {
	Title              *string
	Description        *string
	Status             *entities.TicketStatus
	Priority           *entities.TicketPriority
	AssignedTo         **uint64
	DepartmentID       *uint64
	TargetDepartmentID *uint64
	EquipmentID        *uint64
}

type TicketRepositoryInterface interface {
	// GetTickets возвращает заявки; createdBy != nil сужает выборку до
	// заявок конкретного автора (видимость для сотрудников).
	GetTickets(ctx context.Context, filter types.Filter, createdBy *uint64) ([]entities.Ticket, uint64, error)
	FindTicket(ctx context.Context, id uint64) (*entities.Ticket, error)
	CreateTicket(ctx context.Context, ticket entities.Ticket) (*entities.Ticket, error)
	UpdateTicket(ctx context.Context, id uint64, upd TicketUpdate) (*entities.Ticket, error)
	DeleteTicket(ctx context.Context, id uint64) error
}

type TicketRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTicketRepository(storage *pgxpool.Pool, logger *zap.Logger) TicketRepositoryInterface {
	return &TicketRepository{storage: storage, logger: logger}
}

func scanTicket(row pgx.Row) (*entities.Ticket, error) {
	var t entities.Ticket
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.CreatedBy, &t.AssignedTo, &t.DepartmentID, &t.TargetDepartmentID, &t.EquipmentID,
		&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования ticket: %w", err)
	}
	return &t, nil
}

func (r *TicketRepository) buildFilterQuery(filter types.Filter, createdBy *uint64) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argCounter := 1

	if createdBy != nil {
		conditions = append(conditions, fmt.Sprintf("t.created_by = $%d", argCounter))
		args = append(args, *createdBy)
		argCounter++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(t.title ILIKE $%d OR t.description ILIKE $%d)", argCounter, argCounter))
		args = append(args, "%"+filter.Search+"%")
		argCounter++
	}
	for key, value := range filter.Filter {
		if dbColumn, ok := ticketAllowedFilterFields[key]; ok {
			conditions = append(conditions, fmt.Sprintf("%s = $%d", dbColumn, argCounter))
			args = append(args, value)
			argCounter++
		}
	}
	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *TicketRepository) GetTickets(ctx context.Context, filter types.Filter, createdBy *uint64) ([]entities.Ticket, uint64, error) {
	whereClause, args := r.buildFilterQuery(filter, createdBy)

	var total uint64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s AS t %s", ticketTable, whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Ticket{}, 0, nil
	}

	limitClause := ""
	if filter.WithPagination {
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	query := fmt.Sprintf(`SELECT t.id, t.title, t.description, t.status, t.priority,
		t.created_by, t.assigned_to, t.department_id, t.target_department_id, t.equipment_id,
		t.created_at, t.updated_at
		FROM %s t %s ORDER BY t.id DESC %s`, ticketTable, whereClause, limitClause)
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tickets := make([]entities.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, *t)
	}
	return tickets, total, rows.Err()
}

func (r *TicketRepository) FindTicket(ctx context.Context, id uint64) (*entities.Ticket, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", ticketColumns, ticketTable)
	return scanTicket(r.storage.QueryRow(ctx, query, id))
}

func (r *TicketRepository) CreateTicket(ctx context.Context, ticket entities.Ticket) (*entities.Ticket, error) {
	query := fmt.Sprintf(`INSERT INTO %s (title, description, status, priority, created_by, department_id, target_department_id, equipment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING %s`, ticketTable, ticketColumns)
	created, err := scanTicket(r.storage.QueryRow(ctx, query,
		ticket.Title, ticket.Description, ticket.Status, ticket.Priority,
		ticket.CreatedBy, ticket.DepartmentID, ticket.TargetDepartmentID, ticket.EquipmentID))
	if err != nil {
		return nil, translatePgError(err, "заявка ссылается на несуществующую запись")
	}
	return created, nil
}

func (r *TicketRepository) UpdateTicket(ctx context.Context, id uint64, upd TicketUpdate) (*entities.Ticket, error) {
	updateBuilder := sq.Update(ticketTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	if upd.Title != nil {
		updateBuilder = updateBuilder.Set("title", *upd.Title)
		hasChanges = true
	}
	if upd.Description != nil {
		updateBuilder = updateBuilder.Set("description", *upd.Description)
		hasChanges = true
	}
	if upd.Status != nil {
		updateBuilder = updateBuilder.Set("status", *upd.Status)
		hasChanges = true
	}
	if upd.Priority != nil {
		updateBuilder = updateBuilder.Set("priority", *upd.Priority)
		hasChanges = true
	}
	if upd.AssignedTo != nil {
		updateBuilder = updateBuilder.Set("assigned_to", *upd.AssignedTo)
		hasChanges = true
	}
	if upd.DepartmentID != nil {
		updateBuilder = updateBuilder.Set("department_id", *upd.DepartmentID)
		hasChanges = true
	}
	if upd.TargetDepartmentID != nil {
		updateBuilder = updateBuilder.Set("target_department_id", *upd.TargetDepartmentID)
		hasChanges = true
	}
	if upd.EquipmentID != nil {
		updateBuilder = updateBuilder.Set("equipment_id", *upd.EquipmentID)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindTicket(ctx, id)
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + ticketColumns).ToSql()
	if err != nil {
		return nil, err
	}
	updated, err := scanTicket(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translatePgError(err, "заявка ссылается на несуществующую запись")
	}
	return updated, nil
}

func (r *TicketRepository) DeleteTicket(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", ticketTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
