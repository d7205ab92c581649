package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/simplefilehost/internal/logging"
	"github.com/dmitrijs2005/simplefilehost/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// AuthService is the subset of services.AuthService used by the handlers.
type AuthService interface {
	TokenValidator
	Login(ctx context.Context, username, password string) (*models.AuthResult, error)
}

// FileService is the subset of services.FileService used by the handlers.
type FileService interface {
	UploadFile(ctx context.Context, userID, filename string, size int64, content io.Reader) (string, error)
	DownloadByFileID(ctx context.Context, userID, fileID string) (*models.Download, error)
	DownloadBySharedLink(ctx context.Context, linkID string, password *string) (*models.Download, error)
	ListFiles(ctx context.Context, userID string, sortBy models.SortBy) ([]*models.FileSummary, error)
	DeleteFile(ctx context.Context, userID, fileID string) error
}

// ShareLinkService is the subset of services.ShareLinkService used by the
// handlers.
type ShareLinkService interface {
	CreateShareLink(ctx context.Context, userID, fileID string, password *string, expiry *time.Time) (string, error)
	UpdateShareLink(ctx context.Context, userID, linkID string, password *string, expiry *time.Time) error
	DeleteShareLink(ctx context.Context, userID, linkID string) error
	ValidateLink(ctx context.Context, linkID string, password *string) (*models.LinkValidation, error)
	ListShareLinksForFile(ctx context.Context, userID, fileID string) ([]*models.ShareLink, error)
}

type Handler struct {
	Router chi.Router
}

// NewHandler wires every route onto a chi router.
func NewHandler(as AuthService, fs FileService, ss ShareLinkService, l logging.Logger) *Handler {
	l = l.With("module", "http_api")

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(withLogging(l))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(r.Context(), w, l, errEndpointNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(r.Context(), w, l, errMethodNotAllowed)
	})

	ah := &authHandler{auth: as, logger: l}
	fh := &fileHandler{files: fs, shares: ss, logger: l}
	sh := &sharingHandler{files: fs, shares: ss, logger: l}

	r.Route("/api", func(r chi.Router) {

		r.Post("/auth/login", ah.Login)
		r.Get("/auth/me", ah.Me)

		// anonymous shared-link access
		r.Get("/sharing/{linkId}", sh.Download)
		r.Get("/sharing/{linkId}/validate", sh.Validate)

		r.Group(func(r chi.Router) {
			r.Use(withAuth(as, l))

			r.Get("/files", fh.List)
			r.Post("/files/upload", fh.Upload)
			r.Get("/files/{fileId}", fh.Download)
			r.Delete("/files/{fileId}", fh.Delete)
			r.Get("/files/{fileId}/shareLinks", fh.ListShareLinks)

			r.Post("/sharing", sh.Create)
			r.Put("/sharing/{linkId}", sh.Update)
			r.Delete("/sharing/{linkId}", sh.Delete)
		})
	})

	return &Handler{Router: r}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Router.ServeHTTP(w, r)
}

// optionalQuery distinguishes an absent parameter (nil) from an empty one.
func optionalQuery(r *http.Request, name string) *string {
	q := r.URL.Query()
	if !q.Has(name) {
		return nil
	}
	v := q.Get(name)
	return &v
}
