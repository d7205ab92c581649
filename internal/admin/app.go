// Package admin implements the operator CLI: one-shot user creation and an
// interactive console. It opens the same metadata store as the server and
// shares no state with a running server process.
package admin

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/simplefilehost/internal/common"
	"github.com/dmitrijs2005/simplefilehost/internal/filex"
	"github.com/dmitrijs2005/simplefilehost/internal/logging"
	"github.com/dmitrijs2005/simplefilehost/internal/server/config"
	"github.com/dmitrijs2005/simplefilehost/internal/server/services"
	"github.com/dmitrijs2005/simplefilehost/internal/server/shared/db"
)

// ErrUsage is returned for an unknown subcommand or wrong operand count.
var ErrUsage = errors.New("usage: admin [flags] create-user <id> <username> | console")

// UserRegistrar creates accounts.
type UserRegistrar interface {
	RegisterUser(ctx context.Context, id, username, password string) (string, error)
}

type App struct {
	users  UserRegistrar
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer

	// PasswordStdin reads create-user's password as one line from the
	// reader instead of the terminal.
	PasswordStdin bool

	db *sql.DB
}

// NewApp opens the configured database, running migrations like the server.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend, c.Debug)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir error: %w", err)
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

	a := newApp(services.NewAuthService(conn, m, c), logger, os.Stdin, os.Stdout)
	a.db = conn
	return a, nil
}

func newApp(users UserRegistrar, l logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		users:  users,
		logger: l.With("module", "admin"),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Close releases the database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run executes the subcommand in args.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	switch args[0] {
	case "create-user":
		if len(args) != 3 {
			return ErrUsage
		}
		return a.CreateUser(ctx, args[1], args[2])

	case "console":
		if len(args) != 1 {
			return ErrUsage
		}
		a.Console(ctx)
		return nil

	default:
		return ErrUsage
	}
}

// CreateUser prompts for a password and registers the user.
func (a *App) CreateUser(ctx context.Context, id, username string) error {
	pw, err := a.password()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(pw)

	return a.register(ctx, id, username, string(pw))
}

func (a *App) password() ([]byte, error) {
	if a.PasswordStdin {
		line, err := ReadLine(a.reader)
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}
	return GetPassword(a.out)
}

func (a *App) register(ctx context.Context, id, username, password string) error {
	created, err := a.users.RegisterUser(ctx, id, username, password)
	if err != nil {
		a.logger.Error(ctx, "user creation failed", "username", username, "code", common.CodeOf(err), "error", err)
		return err
	}
	a.logger.Info(ctx, "User created", "user_id", created, "username", username)
	fmt.Fprintf(a.out, "User created: %s (%s)\n", username, created)
	return nil
}
