package files

import (
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/simplefilehost/internal/server/models"
	"github.com/dmitrijs2005/simplefilehost/internal/timex"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.FileRecord, error) {
	var (
		rec  models.FileRecord
		size sql.NullInt64
		date string
	)
	if err := s.Scan(&rec.ID, &rec.UserID, &rec.Filename, &size, &date, &rec.Path); err != nil {
		return nil, err
	}
	t, err := timex.ParseLocal(date)
	if err != nil {
		return nil, fmt.Errorf("bad uploadDate %q: %w", date, err)
	}
	rec.Size = size.Int64
	rec.UploadDate = t
	return &rec, nil
}

func scanSummary(s scanner) (*models.FileSummary, error) {
	var (
		sum  models.FileSummary
		size sql.NullInt64
		date string
	)
	if err := s.Scan(&sum.FileID, &sum.Filename, &size, &date, &sum.SharedLinksCount); err != nil {
		return nil, err
	}
	t, err := timex.ParseLocal(date)
	if err != nil {
		return nil, fmt.Errorf("bad uploadDate %q: %w", date, err)
	}
	sum.Size = size.Int64
	sum.UploadDate = t
	return &sum, nil
}
