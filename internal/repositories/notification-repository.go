package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"helpdesk-system/internal/entities"
	apperrors "helpdesk-system/pkg/errors"
)

const notificationTable = "notifications"

const notificationColumns = "id, user_id, type, title, message, read, created_at"

type NotificationRepositoryInterface interface {
	CreateNotification(ctx context.Context, n entities.Notification) (*entities.Notification, error)
	GetNotificationsByUser(ctx context.Context, userID uint64, onlyUnread bool) ([]entities.Notification, error)
	FindNotification(ctx context.Context, id uint64) (*entities.Notification, error)
	MarkRead(ctx context.Context, id uint64) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type NotificationRepository struct {
	storage *pgxpool.Pool
}

func NewNotificationRepository(storage *pgxpool.Pool) NotificationRepositoryInterface {
	return &NotificationRepository{storage: storage}
}

func scanNotification(row pgx.Row) (*entities.Notification, error) {
	var n entities.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования notification: %w", err)
	}
	return &n, nil
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n entities.Notification) (*entities.Notification, error) {
	query := fmt.Sprintf(`INSERT INTO %s (user_id, type, title, message) VALUES ($1, $2, $3, $4) RETURNING %s`,
		notificationTable, notificationColumns)
	created, err := scanNotification(r.storage.QueryRow(ctx, query, n.UserID, n.Type, n.Title, n.Message))
	if err != nil {
		return nil, translatePgError(err, "уведомление адресовано несуществующему пользователю")
	}
	return created, nil
}

func (r *NotificationRepository) GetNotificationsByUser(ctx context.Context, userID uint64, onlyUnread bool) ([]entities.Notification, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE user_id = $1", notificationColumns, notificationTable)
	if onlyUnread {
		query += " AND read = FALSE"
	}
	query += " ORDER BY id DESC"

	rows, err := r.storage.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]entities.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) FindNotification(ctx context.Context, id uint64) (*entities.Notification, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", notificationColumns, notificationTable)
	return scanNotification(r.storage.QueryRow(ctx, query, id))
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("UPDATE %s SET read = TRUE WHERE id = $1", notificationTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint64) error {
	_, err := r.storage.Exec(ctx, fmt.Sprintf("UPDATE %s SET read = TRUE WHERE user_id = $1 AND read = FALSE", notificationTable), userID)
	return err
}
