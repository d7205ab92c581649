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

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, file *models.FileRecord) error {
	query := `INSERT INTO uploaded_files (id, userId, filename, size, uploadDate, path) VALUES (?, ?, ?, ?, ?, ?)`
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

func (r *SQLiteRepository) GetOwned(ctx context.Context, id, userID string) (*models.FileRecord, error) {
	query := `SELECT id, userId, filename, size, uploadDate, path FROM uploaded_files WHERE id = ? AND userId = ?`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *SQLiteRepository) ListSummaries(ctx context.Context, userID string, sortBy models.SortBy) ([]*models.FileSummary, error) {
	order, err := orderClause(sortBy)
	if err != nil {
		return nil, err
	}
	query := `SELECT uf.id, uf.filename, uf.size, uf.uploadDate, COUNT(sl.id)
		FROM uploaded_files uf
		LEFT JOIN shared_links sl ON sl.fileId = uf.id
		WHERE uf.userId = ?
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

func (r *SQLiteRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM uploaded_files WHERE id = ? AND userId = ?`, id, userID)
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
