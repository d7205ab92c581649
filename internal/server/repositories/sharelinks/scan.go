package sharelinks

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/simplefilehost/internal/common"
	"github.com/dmitrijs2005/simplefilehost/internal/server/models"
	"github.com/dmitrijs2005/simplefilehost/internal/timex"
)

type scanner interface {
	Scan(dest ...any) error
}

func nullExpiry(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: timex.FormatLocal(*t), Valid: true}
}

func nullPassword(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

// fill copies nullable columns into link.
func fill(link *models.ShareLink, expiry, password sql.NullString) error {
	if expiry.Valid {
		t, err := timex.ParseLocal(expiry.String)
		if err != nil {
			return fmt.Errorf("bad expiry %q: %w", expiry.String, err)
		}
		link.Expiry = &t
	}
	if password.Valid {
		p := password.String
		link.Password = &p
	}
	return nil
}

func scanLink(s scanner) (*models.ShareLink, error) {
	var (
		link             models.ShareLink
		expiry, password sql.NullString
	)
	if err := s.Scan(&link.ID, &link.FileID, &expiry, &password); err != nil {
		return nil, err
	}
	if err := fill(&link, expiry, password); err != nil {
		return nil, err
	}
	return &link, nil
}

func scanShared(s scanner) (*models.SharedFile, error) {
	var (
		sf               models.SharedFile
		expiry, password sql.NullString
		size             sql.NullInt64
	)
	if err := s.Scan(&sf.Link.ID, &sf.Link.FileID, &expiry, &password, &sf.Filename, &size, &sf.Path); err != nil {
		return nil, err
	}
	if err := fill(&sf.Link, expiry, password); err != nil {
		return nil, err
	}
	sf.Size = size.Int64
	return &sf, nil
}

func collect(rows *sql.Rows) ([]*models.ShareLink, error) {
	defer rows.Close()
	result := []*models.ShareLink{}
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
