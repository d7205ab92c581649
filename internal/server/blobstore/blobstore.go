// Package blobstore keeps uploaded file content on the local filesystem.
//
// A blob is addressed only by its file identifier: the first two characters
// select a shard directory and the remainder is the file name inside it, so
// "3fa85f64-..." is stored at <root>/3f/a85f64-.... Paths handed out by the
// store are relative to its root and are what the metadata store persists.
package blobstore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/simplefilehost/internal/common"
	"github.com/dmitrijs2005/simplefilehost/internal/filex"
)

const (
	shardLen = 2
	dirPerm  = 0o770
	filePerm = 0o640
)

// Store is a sharded blob directory. It holds no mutable state; every
// upload targets a freshly generated id, so concurrent use needs no locking.
type Store struct {
	root string
}

// New returns a Store rooted at root, creating the directory if needed.
func New(root string) (*Store, error) {
	abs, err := filex.EnsureDir(root)
	if err != nil {
		return nil, fmt.Errorf("blob root: %w", err)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute root directory.
func (s *Store) Root() string { return s.root }

// Locate maps fileID to its relative blob path.
func (s *Store) Locate(fileID string) (string, error) {
	if len(fileID) <= shardLen ||
		strings.ContainsAny(fileID, `/\`) ||
		strings.Contains(fileID, "..") {
		return "", common.ErrInvalidID.Wrap(fmt.Errorf("file id %q", fileID))
	}
	return filepath.Join(fileID[:shardLen], fileID[shardLen:]), nil
}

// Create writes r to the blob for fileID and returns its relative path and
// the number of bytes written. An existing blob is never overwritten: it
// means an identifier was reused, which is reported as DUPLICATE_BLOB_ID.
// On a failed copy the partial blob is removed.
func (s *Store) Create(fileID string, r io.Reader) (string, int64, error) {
	rel, err := s.Locate(fileID)
	if err != nil {
		return "", 0, err
	}
	abs := filepath.Join(s.root, rel)

	if err := os.MkdirAll(filepath.Dir(abs), dirPerm); err != nil {
		return "", 0, common.ErrIOFailure.Wrap(err)
	}

	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", 0, common.ErrDuplicateBlobID.Wrap(fmt.Errorf("blob %s", rel))
		}
		return "", 0, common.ErrIOFailure.Wrap(err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(abs)
		return "", 0, common.ErrIOFailure.Wrap(err)
	}

	return rel, n, nil
}

// Open opens the blob at rel for reading.
func (s *Store) Open(rel string) (*os.File, error) {
	abs, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrBlobMissing.Wrap(fmt.Errorf("blob %s", rel))
		}
		return nil, common.ErrIOFailure.Wrap(err)
	}
	return f, nil
}

// Remove deletes the blob at rel. A missing blob is an inconsistency
// between metadata and storage and is reported as BLOB_MISSING.
func (s *Store) Remove(rel string) error {
	abs, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return common.ErrBlobMissing.Wrap(fmt.Errorf("blob %s", rel))
		}
		return common.ErrIOFailure.Wrap(err)
	}
	return nil
}

func (s *Store) resolve(rel string) (string, error) {
	if !filepath.IsLocal(rel) {
		return "", common.ErrorInternal.Wrap(fmt.Errorf("blob path %q escapes store root", rel))
	}
	return filepath.Join(s.root, rel), nil
}
