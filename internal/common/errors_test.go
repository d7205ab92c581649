package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesByCode(t *testing.T) {
	wrapped := ErrFileNotFound.Wrap(errors.New("sql: no rows"))

	assert.True(t, errors.Is(wrapped, ErrFileNotFound))
	assert.False(t, errors.Is(wrapped, ErrLinkNotFound))

	outer := fmt.Errorf("handler: %w", wrapped)
	assert.True(t, errors.Is(outer, ErrFileNotFound))
}

func TestError_UnwrapReachesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := ErrIOFailure.Wrap(cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "IO_FAILURE")
	assert.Contains(t, err.Error(), "disk full")
}

func TestWrap_DoesNotMutateSentinel(t *testing.T) {
	_ = ErrorInternal.Wrap(errors.New("x"))
	assert.Nil(t, ErrorInternal.Err)
}

func TestInternal(t *testing.T) {
	assert.Nil(t, Internal(nil))

	err := Internal(errors.New("boom"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrorInternal))
	assert.Equal(t, KindInternal, KindOf(err))

	// coded errors keep their classification
	coded := Internal(ErrAccessDenied)
	assert.True(t, errors.Is(coded, ErrAccessDenied))
	assert.Equal(t, KindAccessDenied, KindOf(coded))
}

func TestKindAndCodeOf(t *testing.T) {
	tests := []struct {
		err  error
		kind Kind
		code string
	}{
		{ErrInvalidInput, KindValidation, "INVALID_INPUT"},
		{ErrTokenExpired, KindAuth, "EXPIRED_TOKEN"},
		{ErrInvalidToken, KindAuth, "TOKEN_VALIDATION_FAILURE"},
		{ErrLinkNotFound, KindNotFound, "LINK_NOT_FOUND"},
		{ErrAccessDenied, KindAccessDenied, "ACCESS_DENIED"},
		{ErrUsernameOrIDTaken, KindConflict, "USERNAME_OR_ID_TAKEN"},
		{ErrBlobMissing, KindInternal, "BLOB_MISSING"},
		{errors.New("plain"), KindInternal, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.Equal(t, tt.code, CodeOf(tt.err))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "VALIDATION", KindValidation.String())
	assert.Equal(t, "ACCESS_DENIED", KindAccessDenied.String())
	assert.Equal(t, "INTERNAL", KindInternal.String())
}
