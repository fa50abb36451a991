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

const commentTable = "comments"

const commentColumns = "id, ticket_id, author_id, content, created_at, updated_at"

type CommentRepositoryInterface interface {
	GetCommentsByTicket(ctx context.Context, ticketID uint64) ([]entities.Comment, error)
	FindComment(ctx context.Context, id uint64) (*entities.Comment, error)
	CreateComment(ctx context.Context, comment entities.Comment) (*entities.Comment, error)
	UpdateComment(ctx context.Context, id uint64, content string) (*entities.Comment, error)
	DeleteComment(ctx context.Context, id uint64) error
}

type CommentRepository struct {
	storage *pgxpool.Pool
}

func NewCommentRepository(storage *pgxpool.Pool) CommentRepositoryInterface {
	return &CommentRepository{storage: storage}
}

func scanComment(row pgx.Row) (*entities.Comment, error) {
	var c entities.Comment
	err := row.Scan(&c.ID, &c.TicketID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования comment: %w", err)
	}
	return &c, nil
}

func (r *CommentRepository) GetCommentsByTicket(ctx context.Context, ticketID uint64) ([]entities.Comment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE ticket_id = $1 ORDER BY id ASC", commentColumns, commentTable)
	rows, err := r.storage.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]entities.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) FindComment(ctx context.Context, id uint64) (*entities.Comment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", commentColumns, commentTable)
	return scanComment(r.storage.QueryRow(ctx, query, id))
}

func (r *CommentRepository) CreateComment(ctx context.Context, comment entities.Comment) (*entities.Comment, error) {
	query := fmt.Sprintf(`INSERT INTO %s (ticket_id, author_id, content) VALUES ($1, $2, $3) RETURNING %s`,
		commentTable, commentColumns)
	created, err := scanComment(r.storage.QueryRow(ctx, query, comment.TicketID, comment.AuthorID, comment.Content))
	if err != nil {
		return nil, translatePgError(err, "комментарий ссылается на несуществующую заявку")
	}
	return created, nil
}

func (r *CommentRepository) UpdateComment(ctx context.Context, id uint64, content string) (*entities.Comment, error) {
	query := fmt.Sprintf(`UPDATE %s SET content = $1, updated_at = NOW() WHERE id = $2 RETURNING %s`,
		commentTable, commentColumns)
	return scanComment(r.storage.QueryRow(ctx, query, content, id))
}

func (r *CommentRepository) DeleteComment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", commentTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
