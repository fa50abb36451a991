package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/types"
)

const departmentTable = "departments"

const departmentColumns = "id, name, manager_id, perm_tickets, perm_equipment, perm_users, perm_reports, created_at, updated_at"

type DepartmentRepositoryInterface interface {
	GetDepartments(ctx context.Context, filter types.Filter) ([]entities.Department, uint64, error)
	GetDepartmentStats(ctx context.Context) ([]dto.DepartmentStatsDTO, error)
	FindDepartment(ctx context.Context, id uint64) (*entities.Department, error)
	CreateDepartment(ctx context.Context, department entities.Department) (*entities.Department, error)
	UpdateDepartment(ctx context.Context, id uint64, dto dto.UpdateDepartmentDTO) (*entities.Department, error)
	DeleteDepartment(ctx context.Context, id uint64) error
	CountDependents(ctx context.Context, id uint64) (users uint64, equipment uint64, err error)
}

type DepartmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDepartmentRepository(storage *pgxpool.Pool, logger *zap.Logger) DepartmentRepositoryInterface {
	return &DepartmentRepository{storage: storage, logger: logger}
}

func scanDepartment(row pgx.Row) (*entities.Department, error) {
	var d entities.Department
	err := row.Scan(&d.ID, &d.Name, &d.ManagerID,
		&d.Permissions.Tickets, &d.Permissions.Equipment, &d.Permissions.Users, &d.Permissions.Reports,
		&d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования department: %w", err)
	}
	return &d, nil
}

func (r *DepartmentRepository) GetDepartments(ctx context.Context, filter types.Filter) ([]entities.Department, uint64, error) {
	whereClause := ""
	args := []interface{}{}
	if filter.Search != "" {
		whereClause = "WHERE d.name ILIKE $1"
		args = append(args, "%"+filter.Search+"%")
	}

	var total uint64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s AS d %s", departmentTable, whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Department{}, 0, nil
	}

	limitClause := ""
	if filter.WithPagination {
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	query := fmt.Sprintf("SELECT %s FROM %s d %s ORDER BY d.id %s",
		"d.id, d.name, d.manager_id, d.perm_tickets, d.perm_equipment, d.perm_users, d.perm_reports, d.created_at, d.updated_at",
		departmentTable, whereClause, limitClause)
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	departments := make([]entities.Department, 0)
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return nil, 0, err
		}
		departments = append(departments, *dept)
	}
	return departments, total, rows.Err()
}

func (r *DepartmentRepository) GetDepartmentStats(ctx context.Context) ([]dto.DepartmentStatsDTO, error) {
	query := `SELECT d.id, d.name,
		COUNT(t.id) FILTER (WHERE t.status NOT IN ('closed', 'resolved')) AS open_tickets,
		COUNT(t.id) FILTER (WHERE t.status IN ('closed', 'resolved')) AS closed_tickets
		FROM departments AS d
		LEFT JOIN tickets AS t ON d.id = t.department_id
		GROUP BY d.id, d.name ORDER BY d.id ASC`
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]dto.DepartmentStatsDTO, 0)
	for rows.Next() {
		var s dto.DepartmentStatsDTO
		if err := rows.Scan(&s.ID, &s.Name, &s.OpenTickets, &s.ClosedTickets); err != nil {
			r.logger.Error("ошибка сканирования статистики департаментов", zap.Error(err))
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *DepartmentRepository) FindDepartment(ctx context.Context, id uint64) (*entities.Department, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", departmentColumns, departmentTable)
	return scanDepartment(r.storage.QueryRow(ctx, query, id))
}

func (r *DepartmentRepository) CreateDepartment(ctx context.Context, department entities.Department) (*entities.Department, error) {
	query := fmt.Sprintf(`INSERT INTO %s (name, manager_id, perm_tickets, perm_equipment, perm_users, perm_reports)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING %s`, departmentTable, departmentColumns)
	created, err := scanDepartment(r.storage.QueryRow(ctx, query,
		department.Name, department.ManagerID,
		department.Permissions.Tickets, department.Permissions.Equipment,
		department.Permissions.Users, department.Permissions.Reports))
	if err != nil {
		return nil, translatePgError(err, "департамент с таким названием уже существует")
	}
	return created, nil
}

func (r *DepartmentRepository) UpdateDepartment(ctx context.Context, id uint64, dto dto.UpdateDepartmentDTO) (*entities.Department, error) {
	updateBuilder := sq.Update(departmentTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	if dto.Name != nil {
		updateBuilder = updateBuilder.Set("name", *dto.Name)
		hasChanges = true
	}
	if dto.ManagerID != nil {
		updateBuilder = updateBuilder.Set("manager_id", *dto.ManagerID)
		hasChanges = true
	}
	if dto.Permissions != nil {
		updateBuilder = updateBuilder.
			Set("perm_tickets", dto.Permissions.Tickets).
			Set("perm_equipment", dto.Permissions.Equipment).
			Set("perm_users", dto.Permissions.Users).
			Set("perm_reports", dto.Permissions.Reports)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindDepartment(ctx, id)
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + departmentColumns).ToSql()
	if err != nil {
		return nil, err
	}
	updated, err := scanDepartment(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translatePgError(err, "департамент с таким названием уже существует")
	}
	return updated, nil
}

func (r *DepartmentRepository) DeleteDepartment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", departmentTable), id)
	if err != nil {
		return translatePgError(err, "департамент используется другими записями")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountDependents считает пользователей и оборудование, ссылающиеся на
// департамент. Пока счётчики не нулевые, удаление запрещено.
func (r *DepartmentRepository) CountDependents(ctx context.Context, id uint64) (uint64, uint64, error) {
	var users, equipment uint64
	err := r.storage.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM users WHERE department_id = $1),
			(SELECT COUNT(*) FROM equipment WHERE department_id = $1)`, id).
		Scan(&users, &equipment)
	if err != nil {
		return 0, 0, err
	}
	return users, equipment, nil
}
