package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/simplefilehost/internal/common"
	"github.com/dmitrijs2005/simplefilehost/internal/dbx"
	"github.com/dmitrijs2005/simplefilehost/internal/logging"
	"github.com/dmitrijs2005/simplefilehost/internal/server/models"
	"github.com/dmitrijs2005/simplefilehost/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// BlobStore is the part of blobstore.Store the file service uses.
type BlobStore interface {
	Create(fileID string, r io.Reader) (string, int64, error)
	Open(rel string) (*os.File, error)
	Remove(rel string) error
}

// FileService couples blob storage with file metadata.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       BlobStore
	log         logging.Logger
	now         func() time.Time
	newID       func() string
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, blobs BlobStore, log logging.Logger) *FileService {
	return &FileService{
		db:          db,
		repomanager: m,
		blobs:       blobs,
		log:         log.With("module", "file_service"),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// UploadFile stores content and records it for userID. The blob is written
// before the row; if the insert fails the blob stays behind and is logged.
// A negative size means unknown and is replaced by the bytes written.
func (s *FileService) UploadFile(ctx context.Context, userID, filename string, size int64, content io.Reader) (string, error) {
	fileID := s.newID()

	rel, written, err := s.blobs.Create(fileID, content)
	if err != nil {
		return "", common.Internal(err)
	}
	if size < 0 {
		size = written
	}

	rec := &models.FileRecord{
		ID:         fileID,
		UserID:     userID,
		Filename:   filename,
		Size:       size,
		UploadDate: s.now(),
		Path:       rel,
	}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Files(tx).Create(ctx, rec)
	})
	if err != nil {
		s.log.Warn(ctx, "metadata insert failed, blob left orphaned", "file_id", fileID, "path", rel, "error", err)
		return "", common.Internal(err)
	}

	s.log.Debug(ctx, "file uploaded", "file_id", fileID, "user_id", userID, "size", size)
	return fileID, nil
}

// DownloadByFileID opens a file userID owns. Someone else's file is
// reported exactly like a missing one.
func (s *FileService) DownloadByFileID(ctx context.Context, userID, fileID string) (*models.Download, error) {
	rec, err := s.repomanager.Files(s.db).GetOwned(ctx, fileID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrFileNotFound
		}
		return nil, common.Internal(err)
	}
	return s.open(rec.Path, rec.Filename, rec.Size)
}

// DownloadBySharedLink opens the file behind linkID after checking, in
// order, existence, expiry and password.
func (s *FileService) DownloadBySharedLink(ctx context.Context, linkID string, password *string) (*models.Download, error) {
	sf, err := s.repomanager.ShareLinks(s.db).GetWithFile(ctx, linkID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrLinkNotFound
		}
		return nil, common.Internal(err)
	}
	if err := checkLinkAccess(&sf.Link, password, s.now()); err != nil {
		return nil, err
	}
	return s.open(sf.Path, sf.Filename, sf.Size)
}

func (s *FileService) open(rel, filename string, size int64) (*models.Download, error) {
	f, err := s.blobs.Open(rel)
	if err != nil {
		return nil, common.Internal(err)
	}
	return &models.Download{Filename: filename, Size: size, Content: f}, nil
}

// ListFiles returns userID's files with their link counts.
func (s *FileService) ListFiles(ctx context.Context, userID string, sortBy models.SortBy) ([]*models.FileSummary, error) {
	if !sortBy.Valid() {
		return nil, common.ErrInvalidSortMode
	}
	list, err := s.repomanager.Files(s.db).ListSummaries(ctx, userID, sortBy)
	if err != nil {
		return nil, common.Internal(err)
	}
	return list, nil
}

// DeleteFile removes the row, its links and its blob. The blob goes inside
// the transaction so a missing blob rolls the row back.
func (s *FileService) DeleteFile(ctx context.Context, userID, fileID string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Files(tx)

		rec, err := repo.GetOwned(ctx, fileID, userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrFileNotFound
			}
			return common.Internal(err)
		}
		if err := repo.DeleteOwned(ctx, fileID, userID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrFileNotFound
			}
			return common.Internal(err)
		}
		return s.blobs.Remove(rec.Path)
	})
	if err != nil {
		if errors.Is(err, common.ErrBlobMissing) {
			s.log.Error(ctx, "blob missing for file, delete rolled back", "file_id", fileID, "error", err)
		}
		return common.Internal(err)
	}
	return nil
}
