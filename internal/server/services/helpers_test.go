package services

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/simplefilehost/internal/logging"
	"github.com/dmitrijs2005/simplefilehost/internal/server/blobstore"
	"github.com/dmitrijs2005/simplefilehost/internal/server/config"
	"github.com/dmitrijs2005/simplefilehost/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/simplefilehost/internal/server/repositories/repotest"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// clock is a settable time source shared by the services under test.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *clock { return &clock{t: time.Date(2025, 4, 1, 9, 0, 0, 0, time.Local)} }

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

// env wires the three services to one migrated SQLite database and a blob
// store in a temp dir.
type env struct {
	db     *sql.DB
	blobs  *blobstore.Store
	clock  *clock
	logs   *observer.ObservedLogs
	auth   *AuthService
	files  *FileService
	shares *ShareLinkService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := repotest.NewSQLiteDB(t)
	blobs, err := blobstore.New(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	log := logging.NewZapLogger(zap.New(core).Sugar())

	m := repomanager.NewSQLiteRepositoryManager()
	c := newClock()
	cfg := &config.Config{SecretKey: "test-secret", TokenValidityDuration: time.Hour}

	e := &env{
		db:     db,
		blobs:  blobs,
		clock:  c,
		logs:   logs,
		auth:   NewAuthService(db, m, cfg),
		files:  NewFileService(db, m, blobs, log),
		shares: NewShareLinkService(db, m),
	}
	e.auth.now = c.Now
	e.files.now = c.Now
	e.shares.now = c.Now
	return e
}

func (e *env) register(t *testing.T, id, name string) string {
	t.Helper()
	uid, err := e.auth.RegisterUser(context.Background(), id, name, name+"-pw")
	require.NoError(t, err)
	return uid
}

func (e *env) upload(t *testing.T, userID, name, body string) string {
	t.Helper()
	id, err := e.files.UploadFile(context.Background(), userID, name, int64(len(body)), strings.NewReader(body))
	require.NoError(t, err)
	return id
}

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}
