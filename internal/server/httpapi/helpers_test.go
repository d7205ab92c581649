package httpapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/simplefilehost/internal/logging"
	"github.com/dmitrijs2005/simplefilehost/internal/server/httpapi"
	"github.com/dmitrijs2005/simplefilehost/internal/server/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const (
	testToken  = "Bearer good-token"
	testUserID = "user-1"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) ValidateTokenAndGetUserID(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*models.AuthResult, error) {
	args := m.Called(ctx, username, password)
	res, _ := args.Get(0).(*models.AuthResult)
	return res, args.Error(1)
}

var _ httpapi.AuthService = (*mockAuthService)(nil)

type mockFileService struct {
	mock.Mock
}

func (m *mockFileService) UploadFile(ctx context.Context, userID, filename string, size int64, content io.Reader) (string, error) {
	body, _ := io.ReadAll(content)
	args := m.Called(ctx, userID, filename, size, string(body))
	return args.String(0), args.Error(1)
}

func (m *mockFileService) DownloadByFileID(ctx context.Context, userID, fileID string) (*models.Download, error) {
	args := m.Called(ctx, userID, fileID)
	d, _ := args.Get(0).(*models.Download)
	return d, args.Error(1)
}

func (m *mockFileService) DownloadBySharedLink(ctx context.Context, linkID string, password *string) (*models.Download, error) {
	args := m.Called(ctx, linkID, password)
	d, _ := args.Get(0).(*models.Download)
	return d, args.Error(1)
}

func (m *mockFileService) ListFiles(ctx context.Context, userID string, sortBy models.SortBy) ([]*models.FileSummary, error) {
	args := m.Called(ctx, userID, sortBy)
	list, _ := args.Get(0).([]*models.FileSummary)
	return list, args.Error(1)
}

func (m *mockFileService) DeleteFile(ctx context.Context, userID, fileID string) error {
	return m.Called(ctx, userID, fileID).Error(0)
}

var _ httpapi.FileService = (*mockFileService)(nil)

type mockShareLinkService struct {
	mock.Mock
}

func (m *mockShareLinkService) CreateShareLink(ctx context.Context, userID, fileID string, password *string, expiry *time.Time) (string, error) {
	args := m.Called(ctx, userID, fileID, password, expiry)
	return args.String(0), args.Error(1)
}

func (m *mockShareLinkService) UpdateShareLink(ctx context.Context, userID, linkID string, password *string, expiry *time.Time) error {
	return m.Called(ctx, userID, linkID, password, expiry).Error(0)
}

func (m *mockShareLinkService) DeleteShareLink(ctx context.Context, userID, linkID string) error {
	return m.Called(ctx, userID, linkID).Error(0)
}

func (m *mockShareLinkService) ValidateLink(ctx context.Context, linkID string, password *string) (*models.LinkValidation, error) {
	args := m.Called(ctx, linkID, password)
	v, _ := args.Get(0).(*models.LinkValidation)
	return v, args.Error(1)
}

func (m *mockShareLinkService) ListShareLinksForFile(ctx context.Context, userID, fileID string) ([]*models.ShareLink, error) {
	args := m.Called(ctx, userID, fileID)
	list, _ := args.Get(0).([]*models.ShareLink)
	return list, args.Error(1)
}

var _ httpapi.ShareLinkService = (*mockShareLinkService)(nil)

type fixture struct {
	auth   *mockAuthService
	files  *mockFileService
	shares *mockShareLinkService
	router http.Handler
	logs   *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		auth:   new(mockAuthService),
		files:  new(mockFileService),
		shares: new(mockShareLinkService),
	}
	f.auth.On("ValidateTokenAndGetUserID", testToken).Return(testUserID, nil).Maybe()

	core, logs := observer.New(zap.DebugLevel)
	f.logs = logs
	f.router = httpapi.NewHandler(f.auth, f.files, f.shares, logging.NewZapLogger(zap.New(core).Sugar()))

	t.Cleanup(func() {
		f.auth.AssertExpectations(t)
		f.files.AssertExpectations(t)
		f.shares.AssertExpectations(t)
	})
	return f
}

// do serves one request; a non-empty token is sent as the Authorization header.
func (f *fixture) do(method, target, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func (f *fixture) doJSON(method, target, token, body string) *httptest.ResponseRecorder {
	return f.do(method, target, token, strings.NewReader(body), "application/json")
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e), "body: %s", rr.Body.String())
	return e
}

func strPtr(s string) *string { return &s }

type nopReadCloser struct {
	io.Reader
	closed bool
}

func (n *nopReadCloser) Close() error {
	n.closed = true
	return nil
}
