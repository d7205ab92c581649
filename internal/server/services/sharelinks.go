package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/simplefilehost/internal/common"
	"github.com/dmitrijs2005/simplefilehost/internal/dbx"
	"github.com/dmitrijs2005/simplefilehost/internal/server/models"
	"github.com/dmitrijs2005/simplefilehost/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// linkIDLen is how much of a random UUID becomes a link id.
const linkIDLen = 8

// ShareLinkService manages public links to a user's files.
type ShareLinkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
	newID       func() string
}

func NewShareLinkService(db *sql.DB, m repomanager.RepositoryManager) *ShareLinkService {
	return &ShareLinkService{
		db:          db,
		repomanager: m,
		now:         time.Now,
		newID:       func() string { return uuid.NewString()[:linkIDLen] },
	}
}

// CreateShareLink adds a link to a file userID owns. The password is kept
// as given. A generated id that collides is not retried.
func (s *ShareLinkService) CreateShareLink(ctx context.Context, userID, fileID string, password *string, expiry *time.Time) (string, error) {
	linkID := s.newID()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Files(tx).GetOwned(ctx, fileID, userID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrAccessDenied
			}
			return common.Internal(err)
		}
		return common.Internal(s.repomanager.ShareLinks(tx).Create(ctx, &models.ShareLink{
			ID:       linkID,
			FileID:   fileID,
			Expiry:   expiry,
			Password: password,
		}))
	})
	if err != nil {
		return "", common.Internal(err)
	}
	return linkID, nil
}

// UpdateShareLink replaces both password and expiry; nil clears them.
func (s *ShareLinkService) UpdateShareLink(ctx context.Context, userID, linkID string, password *string, expiry *time.Time) error {
	return s.withOwnedLink(ctx, userID, linkID, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.ShareLinks(tx).Update(ctx, &models.ShareLink{ID: linkID, Expiry: expiry, Password: password})
	})
}

func (s *ShareLinkService) DeleteShareLink(ctx context.Context, userID, linkID string) error {
	return s.withOwnedLink(ctx, userID, linkID, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.ShareLinks(tx).Delete(ctx, linkID)
	})
}

// withOwnedLink runs fn in a transaction after checking, through the file,
// that userID owns linkID. A missing link is ACCESS_DENIED as well.
func (s *ShareLinkService) withOwnedLink(ctx context.Context, userID, linkID string, fn func(context.Context, dbx.DBTX) error) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		owned, err := s.repomanager.ShareLinks(tx).IsOwnedBy(ctx, linkID, userID)
		if err != nil {
			return common.Internal(err)
		}
		if !owned {
			return common.ErrAccessDenied
		}
		if err := fn(ctx, tx); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrAccessDenied
			}
			return common.Internal(err)
		}
		return nil
	})
	return common.Internal(err)
}

// ValidateLink reports the state of a link without enforcing it.
func (s *ShareLinkService) ValidateLink(ctx context.Context, linkID string, password *string) (*models.LinkValidation, error) {
	sf, err := s.repomanager.ShareLinks(s.db).GetWithFile(ctx, linkID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrLinkNotFound
		}
		return nil, common.Internal(err)
	}

	hasPassword := sf.Link.Password != nil && *sf.Link.Password != ""
	return &models.LinkValidation{
		LinkID:        sf.Link.ID,
		FileID:        sf.Link.FileID,
		Filename:      sf.Filename,
		Size:          sf.Size,
		HasPassword:   hasPassword,
		ValidPassword: hasPassword && password != nil && *password == *sf.Link.Password,
		Expiry:        sf.Link.Expiry,
		HasExpired:    sf.Link.HasExpired(s.now()),
	}, nil
}

// ListShareLinksForFile lists links on a file userID owns.
func (s *ShareLinkService) ListShareLinksForFile(ctx context.Context, userID, fileID string) ([]*models.ShareLink, error) {
	if _, err := s.repomanager.Files(s.db).GetOwned(ctx, fileID, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrAccessDenied
		}
		return nil, common.Internal(err)
	}
	links, err := s.repomanager.ShareLinks(s.db).ListByFile(ctx, fileID)
	if err != nil {
		return nil, common.Internal(err)
	}
	return links, nil
}

// checkLinkAccess applies the download gate in order: expiry, then
// password. A non-nil stored password, even an empty one, requires an
// equal supplied password.
func checkLinkAccess(link *models.ShareLink, supplied *string, now time.Time) error {
	if link.HasExpired(now) {
		return common.ErrLinkExpired
	}
	if link.Password != nil && (supplied == nil || *supplied != *link.Password) {
		return common.ErrInvalidPassword
	}
	return nil
}
