package files

import (
	"context"

	"github.com/dmitrijs2005/simplefilehost/internal/server/models"
)

// Repository persists file metadata. Lookups scoped by user return
// common.ErrorNotFound both when the row is missing and when it belongs to
// someone else.
type Repository interface {
	Create(ctx context.Context, file *models.FileRecord) error
	GetOwned(ctx context.Context, id, userID string) (*models.FileRecord, error)
	ListSummaries(ctx context.Context, userID string, sortBy models.SortBy) ([]*models.FileSummary, error)
	DeleteOwned(ctx context.Context, id, userID string) error
}
