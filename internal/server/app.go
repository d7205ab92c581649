// Package server wires configuration, storage, services and the HTTP API
// into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/simplefilehost/internal/filex"
	"github.com/dmitrijs2005/simplefilehost/internal/logging"
	"github.com/dmitrijs2005/simplefilehost/internal/server/blobstore"
	"github.com/dmitrijs2005/simplefilehost/internal/server/config"
	"github.com/dmitrijs2005/simplefilehost/internal/server/httpapi"
	"github.com/dmitrijs2005/simplefilehost/internal/server/services"
	"github.com/dmitrijs2005/simplefilehost/internal/server/shared/db"
	"github.com/google/uuid"
)

// BlobDir is the blob store directory inside the data directory.
const BlobDir = "blobs"

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.HTTPServer
}

// NewApp prepares the data directory, opens and migrates the database and
// builds the HTTP server. Nothing is listening until Run.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend, c.Debug)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	if c.SecretKey == "" {
		c.SecretKey = GenerateSecretKey()
		logger.Warn(ctx, "No secret key configured, generated a temporary one; tokens will not survive a restart")
	}
	logger.Info(ctx, "Configuration loaded", "config", c.String())

	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir error: %w", err)
	}

	blobDir, err := filex.EnsureSubDir(dataDir, BlobDir)
	if err != nil {
		return nil, fmt.Errorf("blob dir error: %w", err)
	}

	blobs, err := blobstore.New(blobDir)
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	conn, m, err := db.Open(ctx, db.Options{
		Driver:       c.DatabaseDriver,
		DSN:          c.DatabaseDSN,
		DataDir:      dataDir,
		MaxOpenConns: c.DatabaseMaxOpenConns,
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	as := services.NewAuthService(conn, m, c)
	fs := services.NewFileService(conn, m, blobs, logger)
	ss := services.NewShareLinkService(conn, m)

	h := httpapi.NewHandler(as, fs, ss, logger)
	srv := httpapi.NewHTTPServer(c.EndpointAddrHTTP, logger, h)

	return &App{config: c, logger: logger, db: conn, server: srv}, nil
}

// GenerateSecretKey returns a random placeholder secret.
func GenerateSecretKey() string {
	return "replaceMe_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives or the server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
