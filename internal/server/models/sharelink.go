package models

import "time"

// ShareLink grants anonymous access to one file. A nil Password means the
// link is not password-gated; a nil Expiry means it never expires.
type ShareLink struct {
	ID       string
	FileID   string
	Expiry   *time.Time
	Password *string
}

// HasExpired reports whether the link's expiry lies before now.
func (l *ShareLink) HasExpired(now time.Time) bool {
	return l.Expiry != nil && l.Expiry.Before(now)
}

// SharedFile is a link joined with the file it points to.
type SharedFile struct {
	Link     ShareLink
	Filename string
	Size     int64
	Path     string
}

// LinkValidation reports a link's state without granting access.
type LinkValidation struct {
	LinkID        string
	FileID        string
	Filename      string
	Size          int64
	HasPassword   bool
	ValidPassword bool
	Expiry        *time.Time
	HasExpired    bool
}
