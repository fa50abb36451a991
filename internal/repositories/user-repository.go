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

const userTable = "users"

const userColumns = "id, fio, email, password, role, department_id, created_at, updated_at"

var (
	userAllowedFilterFields = map[string]string{"role": "u.role", "department_id": "u.department_id"}
	userAllowedSortFields   = map[string]string{"id": "u.id", "fio": "u.fio", "email": "u.email", "created_at": "u.created_at"}
)

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	GetAllUsers(ctx context.Context) ([]entities.User, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, user entities.User) (*entities.User, error)
	UpdateUser(ctx context.Context, id uint64, dto dto.UpdateUserDTO) (*entities.User, error)
	UpdateProfile(ctx context.Context, id uint64, fio, email *string) (*entities.User, error)
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	DeleteUser(ctx context.Context, id uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Fio, &u.Email, &u.Password, &u.Role, &u.DepartmentID, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) buildFilterQuery(filter types.Filter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argCounter := 1
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(u.fio ILIKE $%d OR u.email ILIKE $%d)", argCounter, argCounter))
		args = append(args, "%"+filter.Search+"%")
		argCounter++
	}
	for key, value := range filter.Filter {
		if dbColumn, ok := userAllowedFilterFields[key]; ok {
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

func (r *UserRepository) CountUsers(ctx context.Context, filter types.Filter) (uint64, error) {
	whereClause, args := r.buildFilterQuery(filter)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s AS u %s", userTable, whereClause)
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	total, err := r.CountUsers(ctx, filter)
	if err != nil || total == 0 {
		return []entities.User{}, total, err
	}
	whereClause, args := r.buildFilterQuery(filter)

	orderByClause := "ORDER BY u.id DESC"
	if len(filter.Sort) > 0 {
		sorts := []string{}
		for field, direction := range filter.Sort {
			if dbField, ok := userAllowedSortFields[field]; ok {
				order := "ASC"
				if strings.ToLower(direction) == "desc" {
					order = "DESC"
				}
				sorts = append(sorts, fmt.Sprintf("%s %s", dbField, order))
			}
		}
		if len(sorts) > 0 {
			orderByClause = "ORDER BY " + strings.Join(sorts, ", ")
		}
	}

	limitClause := ""
	argCounter := len(args) + 1
	if filter.WithPagination {
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	query := fmt.Sprintf(`SELECT u.id, u.fio, u.email, u.password, u.role, u.department_id, u.created_at, u.updated_at FROM %s u %s %s %s`,
		userTable, whereClause, orderByClause, limitClause)
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

// GetAllUsers возвращает весь ростер. Используется маршрутизацией уведомлений.
func (r *UserRepository) GetAllUsers(ctx context.Context) ([]entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", userColumns, userTable)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", userColumns, userTable)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE email = $1", userColumns, userTable)
	return scanUser(r.storage.QueryRow(ctx, query, email))
}

func (r *UserRepository) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	query := fmt.Sprintf(`INSERT INTO %s (fio, email, password, role, department_id) VALUES ($1, $2, $3, $4, $5) RETURNING %s`,
		userTable, userColumns)
	created, err := scanUser(r.storage.QueryRow(ctx, query, user.Fio, user.Email, user.Password, user.Role, user.DepartmentID))
	if err != nil {
		return nil, translatePgError(err, "пользователь с таким email уже существует")
	}
	return created, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, id uint64, dto dto.UpdateUserDTO) (*entities.User, error) {
	updateBuilder := sq.Update(userTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	if dto.Fio != nil {
		updateBuilder = updateBuilder.Set("fio", *dto.Fio)
		hasChanges = true
	}
	if dto.Email != nil {
		updateBuilder = updateBuilder.Set("email", *dto.Email)
		hasChanges = true
	}
	if dto.Role != nil {
		updateBuilder = updateBuilder.Set("role", *dto.Role)
		hasChanges = true
	}
	if dto.DepartmentID != nil {
		updateBuilder = updateBuilder.Set("department_id", *dto.DepartmentID)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindUser(ctx, id)
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + userColumns).ToSql()
	if err != nil {
		return nil, err
	}
	updated, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translatePgError(err, "пользователь с таким email уже существует")
	}
	return updated, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uint64, fio, email *string) (*entities.User, error) {
	updateBuilder := sq.Update(userTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	if fio != nil {
		updateBuilder = updateBuilder.Set("fio", *fio)
		hasChanges = true
	}
	if email != nil {
		updateBuilder = updateBuilder.Set("email", *email)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindUser(ctx, id)
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + userColumns).ToSql()
	if err != nil {
		return nil, err
	}
	updated, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translatePgError(err, "пользователь с таким email уже существует")
	}
	return updated, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("UPDATE %s SET password = $1, updated_at = NOW() WHERE id = $2", userTable), passwordHash, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", userTable), id)
	if err != nil {
		return translatePgError(err, "пользователь используется другими записями")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
