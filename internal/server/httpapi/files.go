package httpapi

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/dmitrijs2005/simplefilehost/internal/common"
	"github.com/dmitrijs2005/simplefilehost/internal/logging"
	"github.com/dmitrijs2005/simplefilehost/internal/server/models"
	"github.com/dmitrijs2005/simplefilehost/internal/timex"
	"github.com/go-chi/chi/v5"
)

// multipart parts above this size spill to temporary files
const maxUploadMemory = 32 << 20

type fileHandler struct {
	files  FileService
	shares ShareLinkService
	logger logging.Logger
}

type uploadResponse struct {
	FileID string `json:"fileId"`
}

type fileMeta struct {
	FileID           string              `json:"fileId"`
	Filename         string              `json:"filename"`
	Size             int64               `json:"size"`
	UploadedAt       timex.LocalDateTime `json:"uploadedAt"`
	SharedLinksCount int64               `json:"sharedLinksCount"`
}

type listFilesResponse struct {
	Files []fileMeta `json:"files"`
}

type shareLinkDTO struct {
	ShareLinkID string               `json:"shareLinkId"`
	Expiry      *timex.LocalDateTime `json:"expiry"`
	Password    *string              `json:"password"`
}

type listShareLinksResponse struct {
	FileID string         `json:"fileId"`
	Links  []shareLinkDTO `json:"links"`
}

func (h *fileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(r.Context(), w, h.logger, errMalformedRequest.Wrap(err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	f, hdr, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			writeError(r.Context(), w, h.logger, errFileMissing)
			return
		}
		writeError(r.Context(), w, h.logger, errMalformedRequest.Wrap(err))
		return
	}
	defer f.Close()

	fileID, err := h.files.UploadFile(r.Context(), userID, hdr.Filename, hdr.Size, f)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	h.logger.Info(r.Context(), "File uploaded", "user_id", userID, "file_id", fileID, "size", hdr.Size)
	writeJSON(w, http.StatusCreated, uploadResponse{FileID: fileID})
}

func (h *fileHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	d, err := h.files.DownloadByFileID(r.Context(), userID, chi.URLParam(r, "fileId"))
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}
	streamDownload(w, r, h.logger, d)
}

func (h *fileHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	sortBy := models.DefaultSort
	if s := r.URL.Query().Get("sort"); s != "" {
		parsed, err := models.ParseSortBy(s)
		if err != nil {
			e := *common.ErrInvalidSortMode
			e.Message = err.Error()
			writeError(r.Context(), w, h.logger, &e)
			return
		}
		sortBy = parsed
	}

	list, err := h.files.ListFiles(r.Context(), userID, sortBy)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	resp := listFilesResponse{Files: make([]fileMeta, 0, len(list))}
	for _, f := range list {
		resp.Files = append(resp.Files, fileMeta{
			FileID:           f.FileID,
			Filename:         f.Filename,
			Size:             f.Size,
			UploadedAt:       timex.LocalDateTime{Time: f.UploadDate},
			SharedLinksCount: f.SharedLinksCount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *fileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	fileID := chi.URLParam(r, "fileId")

	if err := h.files.DeleteFile(r.Context(), userID, fileID); err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	h.logger.Info(r.Context(), "File deleted", "user_id", userID, "file_id", fileID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *fileHandler) ListShareLinks(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	fileID := chi.URLParam(r, "fileId")

	links, err := h.shares.ListShareLinksForFile(r.Context(), userID, fileID)
	if err != nil {
		writeError(r.Context(), w, h.logger, err)
		return
	}

	resp := listShareLinksResponse{FileID: fileID, Links: make([]shareLinkDTO, 0, len(links))}
	for _, l := range links {
		resp.Links = append(resp.Links, shareLinkDTO{
			ShareLinkID: l.ID,
			Expiry:      timex.FromPtr(l.Expiry),
			Password:    l.Password,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// streamDownload writes d as an attachment and closes it.
func streamDownload(w http.ResponseWriter, r *http.Request, l logging.Logger, d *models.Download) {
	defer d.Content.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": d.Filename}))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, d.Content); err != nil {
		l.Warn(r.Context(), "download interrupted", "error", err)
	}
}
