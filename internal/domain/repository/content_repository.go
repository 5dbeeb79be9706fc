package repository

import (
	"context"

	"github.com/contentdesk/contentdesk-api/internal/domain/entity"
)

// ContentRepository defines content and summary-log persistence.
// Read and write operations take an optional ownerID filter: nil means
// unscoped (manager view), non-nil narrows every query to that owner so
// out-of-scope rows are indistinguishable from absent ones.
type ContentRepository interface {
	Create(ctx context.Context, c *entity.Content) error
	GetByID(ctx context.Context, id string, ownerID *string) (*entity.Content, error)
	List(ctx context.Context, ownerID *string) ([]entity.Content, error)
	Update(ctx context.Context, c *entity.Content) error
	Delete(ctx context.Context, id string, ownerID *string) error

	AppendLog(ctx context.Context, l *entity.SummaryLog) error
	ListLogs(ctx context.Context, contentID string) ([]entity.SummaryLog, error)
}
