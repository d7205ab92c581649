package sharelinks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/simplefilehost/internal/common"
	"github.com/dmitrijs2005/simplefilehost/internal/dbx"
	"github.com/dmitrijs2005/simplefilehost/internal/server/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, link *models.ShareLink) error {
	query := `INSERT INTO shared_links (id, fileId, expiry, password) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, link.ID, link.FileID, nullExpiry(link.Expiry), nullPassword(link.Password))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetWithFile(ctx context.Context, id string) (*models.SharedFile, error) {
	query := `SELECT sl.id, sl.fileId, sl.expiry, sl.password, uf.filename, uf.size, uf.path
		FROM shared_links sl
		JOIN uploaded_files uf ON uf.id = sl.fileId
		WHERE sl.id = ?`
	sf, err := scanShared(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return sf, nil
}

func (r *SQLiteRepository) IsOwnedBy(ctx context.Context, linkID, userID string) (bool, error) {
	query := `SELECT 1 FROM shared_links sl JOIN uploaded_files uf ON uf.id = sl.fileId WHERE sl.id = ? AND uf.userId = ?`
	var one int
	if err := r.db.QueryRowContext(ctx, query, linkID, userID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, link *models.ShareLink) error {
	res, err := r.db.ExecContext(ctx, `UPDATE shared_links SET expiry = ?, password = ? WHERE id = ?`,
		nullExpiry(link.Expiry), nullPassword(link.Password), link.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shared_links WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res)
}

func (r *SQLiteRepository) ListByFile(ctx context.Context, fileID string) ([]*models.ShareLink, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, fileId, expiry, password FROM shared_links WHERE fileId = ? ORDER BY id`, fileID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collect(rows)
}
