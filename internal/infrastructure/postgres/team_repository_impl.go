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

type TeamRepository struct {
	pool *pgxpool.Pool
}

func NewTeamRepository(pool *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{pool: pool}
}

func (r *TeamRepository) Create(ctx context.Context, t *entity.Team) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO teams (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`, t.Name)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (*entity.Team, error) {
	t := &entity.Team{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at
		FROM teams
		WHERE id = $1
	`, id)

	if err := row.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]entity.Team, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at, updated_at
		FROM teams
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]entity.Team, 0)
	for rows.Next() {
		var t entity.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *TeamRepository) Update(ctx context.Context, t *entity.Team) error {
	t.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE teams
		SET name = $1, updated_at = $2
		WHERE id = $3
	`, t.Name, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.TeamRepository = (*TeamRepository)(nil)
