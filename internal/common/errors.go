package common

import (
	"errors"
	"fmt"
)

// Repository-level errors. Repositories return these; services translate
// them into coded errors below.
var (
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
)

// Kind classifies a coded error. Transport adapters map kinds to their own
// status codes.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindAccessDenied
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindAuth:
		return "AUTH"
	case KindNotFound:
		return "NOT_FOUND"
	case KindAccessDenied:
		return "ACCESS_DENIED"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL"
	}
}

// Error is the structured error returned by every service operation.
// Two Errors match under errors.Is when their codes are equal, so the
// sentinels below can be used as targets regardless of the wrapped cause.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.Err = cause
	return &c
}

var (
	// validation
	ErrInvalidInput    = &Error{Kind: KindValidation, Code: "INVALID_INPUT", Message: "username and password must not be empty"}
	ErrInvalidID       = &Error{Kind: KindValidation, Code: "INVALID_ID", Message: "identifier is malformed"}
	ErrInvalidSortMode = &Error{Kind: KindValidation, Code: "INVALID_SORT_MODE", Message: "invalid sort mode"}

	// auth
	ErrInvalidCredentials = &Error{Kind: KindAuth, Code: "INVALID_CREDENTIALS", Message: "invalid username or password"}
	ErrTokenExpired       = &Error{Kind: KindAuth, Code: "EXPIRED_TOKEN", Message: "token expired"}
	ErrInvalidToken       = &Error{Kind: KindAuth, Code: "TOKEN_VALIDATION_FAILURE", Message: "token validation failed"}
	ErrInvalidPassword    = &Error{Kind: KindAuth, Code: "INVALID_PASSWORD", Message: "invalid password for shared link"}

	// not found
	ErrFileNotFound = &Error{Kind: KindNotFound, Code: "FILE_NOT_FOUND", Message: "file not found"}
	ErrLinkNotFound = &Error{Kind: KindNotFound, Code: "LINK_NOT_FOUND", Message: "shared link not found"}
	ErrLinkExpired  = &Error{Kind: KindNotFound, Code: "LINK_EXPIRED", Message: "shared link has expired"}

	// ownership
	ErrAccessDenied = &Error{Kind: KindAccessDenied, Code: "ACCESS_DENIED", Message: "access denied"}

	// conflicts
	ErrUsernameOrIDTaken = &Error{Kind: KindConflict, Code: "USERNAME_OR_ID_TAKEN", Message: "username or id is already taken"}
	ErrDuplicateBlobID   = &Error{Kind: KindConflict, Code: "DUPLICATE_BLOB_ID", Message: "blob already exists for file id"}

	// internal
	ErrorInternal  = &Error{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: "internal error"}
	ErrIOFailure   = &Error{Kind: KindInternal, Code: "IO_FAILURE", Message: "storage i/o failure"}
	ErrBlobMissing = &Error{Kind: KindInternal, Code: "BLOB_MISSING", Message: "metadata references a missing blob"}
)

// Internal wraps an unexpected cause as INTERNAL_ERROR. Coded errors pass
// through unchanged so that an inner classification is never downgraded.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return ErrorInternal.Wrap(err)
}

// KindOf reports the kind of err; uncoded errors are KindInternal.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindInternal
}

// CodeOf reports the code of err; uncoded errors are INTERNAL_ERROR.
func CodeOf(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrorInternal.Code
}
