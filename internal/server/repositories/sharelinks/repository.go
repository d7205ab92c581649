package sharelinks

import (
	"context"

	"github.com/dmitrijs2005/simplefilehost/internal/server/models"
)

// Repository persists shared links. Ownership of a link is derived from
// the file it points to.
type Repository interface {
	Create(ctx context.Context, link *models.ShareLink) error
	GetWithFile(ctx context.Context, id string) (*models.SharedFile, error)
	IsOwnedBy(ctx context.Context, linkID, userID string) (bool, error)
	Update(ctx context.Context, link *models.ShareLink) error
	Delete(ctx context.Context, id string) error
	ListByFile(ctx context.Context, fileID string) ([]*models.ShareLink, error)
}
