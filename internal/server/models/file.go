package models

import (
	"io"
	"time"
)

// FileRecord describes an uploaded file. Path is the blob location relative
// to the blob store root.
type FileRecord struct {
	ID         string
	UserID     string
	Filename   string
	Size       int64
	UploadDate time.Time
	Path       string
}

// FileSummary is a listing row; SharedLinksCount is computed per query.
type FileSummary struct {
	FileID           string
	Filename         string
	Size             int64
	UploadDate       time.Time
	SharedLinksCount int64
}

// Download is an opened blob ready to be streamed. The caller closes
// Content.
type Download struct {
	Filename string
	Size     int64
	Content  io.ReadCloser
}
