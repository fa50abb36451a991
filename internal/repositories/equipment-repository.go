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

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/entities"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/types"
)

const equipmentTable = "equipment"

const equipmentColumns = "id, name, serial_number, status, assigned_to_id, department_id, created_at, updated_at"

var equipmentAllowedFilterFields = map[string]string{
	"status":         "e.status",
	"department_id":  "e.department_id",
	"assigned_to_id": "e.assigned_to_id",
}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, equipment entities.Equipment) (*entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id uint64, dto dto.UpdateEquipmentDTO) (*entities.Equipment, error)
	// UpdateAssignment пишет исполнителя и статус одним запросом, чтобы они
	// не могли разъехаться.
	UpdateAssignment(ctx context.Context, id uint64, userID *uint64, status entities.EquipmentStatus) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id uint64) error
	CountTicketsForEquipment(ctx context.Context, id uint64) (uint64, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(&e.ID, &e.Name, &e.SerialNumber, &e.Status, &e.AssignedToID, &e.DepartmentID, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования equipment: %w", err)
	}
	return &e, nil
}

func (r *EquipmentRepository) buildFilterQuery(filter types.Filter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argCounter := 1
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(e.name ILIKE $%d OR e.serial_number ILIKE $%d)", argCounter, argCounter))
		args = append(args, "%"+filter.Search+"%")
		argCounter++
	}
	for key, value := range filter.Filter {
		if dbColumn, ok := equipmentAllowedFilterFields[key]; ok {
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

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	whereClause, args := r.buildFilterQuery(filter)

	var total uint64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s AS e %s", equipmentTable, whereClause)
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Equipment{}, 0, nil
	}

	limitClause := ""
	if filter.WithPagination {
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	query := fmt.Sprintf(`SELECT e.id, e.name, e.serial_number, e.status, e.assigned_to_id, e.department_id, e.created_at, e.updated_at
		FROM %s e %s ORDER BY e.id DESC %s`, equipmentTable, whereClause, limitClause)
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *e)
	}
	return items, total, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", equipmentColumns, equipmentTable)
	return scanEquipment(r.storage.QueryRow(ctx, query, id))
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, equipment entities.Equipment) (*entities.Equipment, error) {
	query := fmt.Sprintf(`INSERT INTO %s (name, serial_number, status, department_id)
		VALUES ($1, $2, $3, $4) RETURNING %s`, equipmentTable, equipmentColumns)
	created, err := scanEquipment(r.storage.QueryRow(ctx, query,
		equipment.Name, equipment.SerialNumber, equipment.Status, equipment.DepartmentID))
	if err != nil {
		return nil, translatePgError(err, "оборудование с таким серийным номером уже существует")
	}
	return created, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id uint64, dto dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	updateBuilder := sq.Update(equipmentTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	if dto.Name != nil {
		updateBuilder = updateBuilder.Set("name", *dto.Name)
		hasChanges = true
	}
	if dto.SerialNumber != nil {
		updateBuilder = updateBuilder.Set("serial_number", *dto.SerialNumber)
		hasChanges = true
	}
	if dto.Status != nil {
		updateBuilder = updateBuilder.Set("status", *dto.Status)
		hasChanges = true
	}
	if dto.DepartmentID != nil {
		updateBuilder = updateBuilder.Set("department_id", *dto.DepartmentID)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindEquipment(ctx, id)
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + equipmentColumns).ToSql()
	if err != nil {
		return nil, err
	}
	updated, err := scanEquipment(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translatePgError(err, "оборудование с таким серийным номером уже существует")
	}
	return updated, nil
}

func (r *EquipmentRepository) UpdateAssignment(ctx context.Context, id uint64, userID *uint64, status entities.EquipmentStatus) (*entities.Equipment, error) {
	query := fmt.Sprintf(`UPDATE %s SET assigned_to_id = $1, status = $2, updated_at = NOW() WHERE id = $3 RETURNING %s`,
		equipmentTable, equipmentColumns)
	return scanEquipment(r.storage.QueryRow(ctx, query, userID, status, id))
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", equipmentTable), id)
	if err != nil {
		return translatePgError(err, "оборудование используется в заявках")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) CountTicketsForEquipment(ctx context.Context, id uint64) (uint64, error) {
	var total uint64
	err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM tickets WHERE equipment_id = $1", id).Scan(&total)
	return total, err
}
