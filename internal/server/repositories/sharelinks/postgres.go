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

// PostgresRepository implements link storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a link. A reused id yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, link *models.ShareLink) error {
	query :=
		`INSERT INTO shared_links (id, fileId, expiry, password)
		 VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, link.ID, link.FileID, nullExpiry(link.Expiry), nullPassword(link.Password))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetWithFile returns the link joined with its file.
func (r *PostgresRepository) GetWithFile(ctx context.Context, id string) (*models.SharedFile, error) {
	query :=
		`SELECT sl.id, sl.fileId, sl.expiry, sl.password, uf.filename, uf.size, uf.path
		 FROM shared_links sl
		 JOIN uploaded_files uf ON uf.id = sl.fileId
		 WHERE sl.id = $1`

	sf, err := scanShared(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return sf, nil
}

// IsOwnedBy reports whether the file behind linkID belongs to userID.
func (r *PostgresRepository) IsOwnedBy(ctx context.Context, linkID, userID string) (bool, error) {
	query :=
		`SELECT 1 FROM shared_links sl
		 JOIN uploaded_files uf ON uf.id = sl.fileId
		 WHERE sl.id = $1 AND uf.userId = $2`

	var one int
	if err := r.db.QueryRowContext(ctx, query, linkID, userID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

// Update replaces expiry and password wholesale; nil clears a field.
func (r *PostgresRepository) Update(ctx context.Context, link *models.ShareLink) error {
	query := `UPDATE shared_links SET expiry = $1, password = $2 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, nullExpiry(link.Expiry), nullPassword(link.Password), link.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res)
}

// Delete removes the link.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shared_links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return affectedOne(res)
}

// ListByFile returns every link pointing at fileID ordered by id.
func (r *PostgresRepository) ListByFile(ctx context.Context, fileID string) ([]*models.ShareLink, error) {
	query := `SELECT id, fileId, expiry, password FROM shared_links WHERE fileId = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, fileID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collect(rows)
}
