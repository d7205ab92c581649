package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/simplefilehost/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{common.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{common.ErrInvalidSortMode, http.StatusBadRequest, "INVALID_SORT_MODE"},
		{common.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{common.ErrInvalidPassword, http.StatusUnauthorized, "INVALID_PASSWORD"},
		{common.ErrFileNotFound, http.StatusNotFound, "FILE_NOT_FOUND"},
		{common.ErrLinkNotFound, http.StatusNotFound, "LINK_NOT_FOUND"},
		{common.ErrLinkExpired, http.StatusGone, "LINK_EXPIRED"},
		{common.ErrAccessDenied, http.StatusNotFound, "FILE_NOT_FOUND"},
		{common.ErrUsernameOrIDTaken, http.StatusConflict, "USERNAME_OR_ID_TAKEN"},
		{common.ErrBlobMissing, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{common.ErrIOFailure.Wrap(errors.New("disk")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{errors.New("plain"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{fmt.Errorf("wrapped: %w", common.ErrLinkExpired), http.StatusGone, "LINK_EXPIRED"},
		{errMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, body := statusFor(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestStatusFor_InternalMessageIsGeneric(t *testing.T) {
	_, body := statusFor(common.ErrBlobMissing.Wrap(errors.New("blob ab/cdef")))
	assert.Equal(t, common.ErrorInternal.Message, body.Message)
	assert.NotContains(t, body.Message, "ab/cdef")
}
