package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/simplefilehost/internal/common"
	"github.com/dmitrijs2005/simplefilehost/internal/logging"
)

// Boundary errors produced before a service is reached.
var (
	errUnauthorized     = &common.Error{Kind: common.KindAuth, Code: "UNAUTHORIZED", Message: "authorization token is missing"}
	errMalformedRequest = &common.Error{Kind: common.KindValidation, Code: "MALFORMED_REQUEST", Message: "request body is malformed"}
	errFileMissing      = &common.Error{Kind: common.KindValidation, Code: "FILE_MISSING", Message: `no file uploaded as "file" form field`}
	errFileIDMissing    = &common.Error{Kind: common.KindValidation, Code: "FILE_ID_MISSING", Message: "file id must not be empty"}
	errEndpointNotFound = &common.Error{Kind: common.KindNotFound, Code: "ENDPOINT_NOT_FOUND", Message: "endpoint not found"}
	errMethodNotAllowed = &common.Error{Kind: common.KindValidation, Code: "METHOD_NOT_ALLOWED", Message: "method not allowed"}
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps an error to its HTTP status and public body. Ownership
// failures are indistinguishable from a missing file.
func statusFor(err error) (int, errorResponse) {
	var ce *common.Error
	if !errors.As(err, &ce) {
		return http.StatusInternalServerError, errorResponse{Code: common.ErrorInternal.Code, Message: common.ErrorInternal.Message}
	}

	switch ce.Kind {
	case common.KindValidation:
		if ce.Code == errMethodNotAllowed.Code {
			return http.StatusMethodNotAllowed, errorResponse{Code: ce.Code, Message: ce.Message}
		}
		return http.StatusBadRequest, errorResponse{Code: ce.Code, Message: ce.Message}
	case common.KindAuth:
		return http.StatusUnauthorized, errorResponse{Code: ce.Code, Message: ce.Message}
	case common.KindNotFound:
		if ce.Code == common.ErrLinkExpired.Code {
			return http.StatusGone, errorResponse{Code: ce.Code, Message: ce.Message}
		}
		return http.StatusNotFound, errorResponse{Code: ce.Code, Message: ce.Message}
	case common.KindAccessDenied:
		return http.StatusNotFound, errorResponse{Code: common.ErrFileNotFound.Code, Message: "file not found or access denied"}
	case common.KindConflict:
		return http.StatusConflict, errorResponse{Code: ce.Code, Message: ce.Message}
	default:
		return http.StatusInternalServerError, errorResponse{Code: common.ErrorInternal.Code, Message: common.ErrorInternal.Message}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers with the mapped status. Internal causes are logged
// and never reach the client.
func writeError(ctx context.Context, w http.ResponseWriter, l logging.Logger, err error) {
	status, body := statusFor(err)
	if status == http.StatusInternalServerError {
		l.Error(ctx, "request failed", "code", common.CodeOf(err), "error", err)
	}
	writeJSON(w, status, body)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errMalformedRequest.Wrap(err)
	}
	return nil
}
