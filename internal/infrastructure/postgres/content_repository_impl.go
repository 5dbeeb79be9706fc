package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contentdesk/contentdesk-api/internal/domain/entity"
	"github.com/contentdesk/contentdesk-api/internal/domain/repository"
)

type ContentRepository struct {
	pool *pgxpool.Pool
}

func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

const contentColumns = `id, user_id, title, description, deadline, status, created_at, updated_at`

func (r *ContentRepository) Create(ctx context.Context, c *entity.Content) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contents (user_id, title, description, deadline, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, c.UserID, c.Title, c.Description, c.Deadline, c.Status)

	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID applies the owner filter inside the query: a row owned by
// someone else is reported exactly like a missing row.
func (r *ContentRepository) GetByID(ctx context.Context, id string, ownerID *string) (*entity.Content, error) {
	c := &entity.Content{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+contentColumns+`
		FROM contents
		WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)
	`, id, ownerID)

	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Description, &c.Deadline,
		&c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *ContentRepository) List(ctx context.Context, ownerID *string) ([]entity.Content, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+contentColumns+`
		FROM contents
		WHERE ($1::uuid IS NULL OR user_id = $1)
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contents := make([]entity.Content, 0)
	for rows.Next() {
		var c entity.Content
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.Description, &c.Deadline,
			&c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}

func (r *ContentRepository) Update(ctx context.Context, c *entity.Content) error {
	c.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE contents
		SET title = $1, description = $2, deadline = $3, status = $4, updated_at = $5
		WHERE id = $6
	`, c.Title, c.Description, c.Deadline, c.Status, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the content row; associated summary logs go with it via
// the ON DELETE CASCADE foreign key.
func (r *ContentRepository) Delete(ctx context.Context, id string, ownerID *string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM contents
		WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)
	`, id, ownerID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ContentRepository) AppendLog(ctx context.Context, l *entity.SummaryLog) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO ai_logs (content_id, user_id, type, response)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, l.ContentID, l.UserID, l.Type, l.Response)

	return row.Scan(&l.ID, &l.CreatedAt)
}

func (r *ContentRepository) ListLogs(ctx context.Context, contentID string) ([]entity.SummaryLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, content_id, user_id, type, response, created_at
		FROM ai_logs
		WHERE content_id = $1
		ORDER BY created_at
	`, contentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]entity.SummaryLog, 0)
	for rows.Next() {
		var l entity.SummaryLog
		if err := rows.Scan(&l.ID, &l.ContentID, &l.UserID, &l.Type, &l.Response, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

var _ repository.ContentRepository = (*ContentRepository)(nil)
