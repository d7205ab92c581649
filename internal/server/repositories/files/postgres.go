package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/simplefilehost/internal/common"
	"github.com/dmitrijs2005/simplefilehost/internal/dbx"
	"github.com/dmitrijs2005/simplefilehost/internal/server/models"
	"github.com/dmitrijs2005/simplefilehost/internal/timex"
)

// PostgresRepository implements file metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a file row. A reused id yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, file *models.FileRecord) error {
	query :=
		`INSERT INTO uploaded_files (id, userId, filename, size, uploadDate, path)
		 VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		file.ID, file.UserID, file.Filename, file.Size, timex.FormatLocal(file.UploadDate), file.Path)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetOwned returns the file row only when userID owns it.
func (r *PostgresRepository) GetOwned(ctx context.Context, id, userID string) (*models.FileRecord, error) {
	query :=
		`SELECT id, userId, filename, size, uploadDate, path FROM uploaded_files
		 WHERE id = $1 AND userId = $2`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

// ListSummaries returns userID's files with their link counts.
func (r *PostgresRepository) ListSummaries(ctx context.Context, userID string, sortBy models.SortBy) ([]*models.FileSummary, error) {
	order, err := orderClause(sortBy)
	if err != nil {
		return nil, err
	}

	query :=
		`SELECT uf.id, uf.filename, uf.size, uf.uploadDate, COUNT(sl.id)
		 FROM uploaded_files uf
		 LEFT JOIN shared_links sl ON sl.fileId = uf.id
		 WHERE uf.userId = $1
		 GROUP BY uf.id, uf.filename, uf.size, uf.uploadDate
		 ` + order

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.FileSummary{}
	for rows.Next() {
		item, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// DeleteOwned removes the file row if userID owns it. Links go with it
// through ON DELETE CASCADE.
func (r *PostgresRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	query := `DELETE FROM uploaded_files WHERE id = $1 AND userId = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
