package repository

import (
	"context"

	"github.com/contentdesk/contentdesk-api/internal/domain/entity"
)

// TeamRepository defines the interface for team-related database operations.
type TeamRepository interface {
	Create(ctx context.Context, t *entity.Team) error
	GetByID(ctx context.Context, id string) (*entity.Team, error)
	List(ctx context.Context) ([]entity.Team, error)
	Update(ctx context.Context, t *entity.Team) error
	Delete(ctx context.Context, id string) error
}
