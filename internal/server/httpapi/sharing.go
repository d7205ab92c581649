package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/simplefilehost/internal/logging"
	"github.com/dmitrijs2005/simplefilehost/internal/timex"
	"github.com/go-chi/chi/v5"
)

type sharingHandler struct {
	files  FileService
	shares ShareLinkService
	logger logging.Logger
}

type createShareLinkRequest struct {
	FileID   string               `json:"fileId"`
	Password *string              `json:"password"`
	Expiry   *timex.LocalDateTime `json:"expiry"`
}

type createShareLinkResponse struct {
	LinkID string `json:"linkId"`
}

// Both fields are replaced; an omitted field clears the stored value.
type updateShareLinkRequest struct {
	Password *string              `json:"password"`
	Expiry   *timex.LocalDateTime `json:"expiry"`
}

type linkValidationResponse struct {
	LinkID        string               `json:"linkId"`
	FileID        string               `json:"fileId"`
	Filename      string               `json:"filename"`
	FileSize      int64                `json:"fileSize"`
	HasPassword   bool                 `json:"hasPassword"`
	ValidPassword bool                 `json:"validPassword"`
	Expiry        *timex.LocalDateTime `json:"expiry"`
	HasExpired    bool                 `json:"hasExpired"`
}

func (h *sharingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req createShareLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	if req.FileID == "" {
		writeError(r.Context(), w, h.logger, errFileIDMissing)
		return
	}

	linkID, err := h.shares.CreateShareLink(r.Context(), userID, req.FileID, req.Password, req.Expiry.Ptr())
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	h.logger.Info(r.Context(), "Share link created", "user_id", userID, "file_id", req.FileID, "link_id", linkID)
	writeJSON(w, http.StatusCreated, createShareLinkResponse{LinkID: linkID})
}

func (h *sharingHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req updateShareLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	err := h.shares.UpdateShareLink(r.Context(), userID, chi.URLParam(r, "linkId"), req.Password, req.Expiry.Ptr())
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *sharingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	if err := h.shares.DeleteShareLink(r.Context(), userID, chi.URLParam(r, "linkId")); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Download streams the shared file to an anonymous caller.
func (h *sharingHandler) Download(w http.ResponseWriter, r *http.Request) {
	d, err := h.files.DownloadBySharedLink(r.Context(), chi.URLParam(r, "linkId"), optionalQuery(r, "password"))
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	streamDownload(w, r, h.logger, d)
}

// Validate reports link state; an expired link or a wrong password is
// still a 200.
func (h *sharingHandler) Validate(w http.ResponseWriter, r *http.Request) {
	v, err := h.shares.ValidateLink(r.Context(), chi.URLParam(r, "linkId"), optionalQuery(r, "password"))
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, linkValidationResponse{
		LinkID:        v.LinkID,
		FileID:        v.FileID,
		Filename:      v.Filename,
		FileSize:      v.Size,
		HasPassword:   v.HasPassword,
		ValidPassword: v.ValidPassword,
		Expiry:        timex.FromPtr(v.Expiry),
		HasExpired:    v.HasExpired,
	})
}
