package admin

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/simplefilehost/internal/common"
	"github.com/dmitrijs2005/simplefilehost/internal/logging"
	"github.com/dmitrijs2005/simplefilehost/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type mockRegistrar struct {
	mock.Mock
}

func (m *mockRegistrar) RegisterUser(ctx context.Context, id, username, password string) (string, error) {
	args := m.Called(ctx, id, username, password)
	return args.String(0), args.Error(1)
}

var _ UserRegistrar = (*mockRegistrar)(nil)

func newTestApp(t *testing.T, input string) (*App, *mockRegistrar, *bytes.Buffer, *observer.ObservedLogs) {
	t.Helper()
	reg := new(mockRegistrar)
	t.Cleanup(func() { reg.AssertExpectations(t) })

	core, logs := observer.New(zap.DebugLevel)
	out := &bytes.Buffer{}
	a := newApp(reg, logging.NewZapLogger(zap.New(core).Sugar()), strings.NewReader(input), out)
	return a, reg, out, logs
}

func stubPassword(t *testing.T, pw string, err error) {
	t.Helper()
	old := readPassword
	readPassword = func(int) ([]byte, error) {
		if err != nil {
			return nil, err
		}
		return []byte(pw), nil
	}
	t.Cleanup(func() { readPassword = old })
}

func TestRun_Usage(t *testing.T) {
	a, _, _, _ := newTestApp(t, "")

	for _, args := range [][]string{
		nil,
		{"bogus"},
		{"create-user", "42"},
		{"create-user", "42", "alice", "extra"},
		{"console", "x"},
	} {
		assert.ErrorIs(t, a.Run(context.Background(), args), ErrUsage, "args %v", args)
	}
}

func TestCreateUser_TerminalPassword(t *testing.T) {
	stubPassword(t, "s3cret", nil)

	a, reg, out, logs := newTestApp(t, "")
	reg.On("RegisterUser", mock.Anything, "42", "alice", "s3cret").Return("42", nil)

	require.NoError(t, a.Run(context.Background(), []string{"create-user", "42", "alice"}))

	assert.Contains(t, out.String(), "Enter password: ")
	assert.Contains(t, out.String(), "User created: alice (42)")
	assert.Equal(t, 1, logs.FilterMessage("User created").Len())
}

func TestCreateUser_PasswordStdin(t *testing.T) {
	a, reg, out, _ := newTestApp(t, "from-pipe\n")
	a.PasswordStdin = true
	reg.On("RegisterUser", mock.Anything, "7", "bob", "from-pipe").Return("7", nil)

	require.NoError(t, a.Run(context.Background(), []string{"create-user", "7", "bob"}))
	assert.NotContains(t, out.String(), "Enter password")
}

func TestCreateUser_PasswordReadFails(t *testing.T) {
	stubPassword(t, "", errors.New("not a terminal"))

	a, _, _, _ := newTestApp(t, "")

	err := a.Run(context.Background(), []string{"create-user", "42", "alice"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read password")
}

func TestCreateUser_Taken(t *testing.T) {
	stubPassword(t, "pw", nil)

	a, reg, _, logs := newTestApp(t, "")
	reg.On("RegisterUser", mock.Anything, "42", "alice", "pw").Return("", common.ErrUsernameOrIDTaken)

	err := a.Run(context.Background(), []string{"create-user", "42", "alice"})
	assert.ErrorIs(t, err, common.ErrUsernameOrIDTaken)

	entries := logs.FilterMessage("user creation failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "USERNAME_OR_ID_TAKEN", entries[0].ContextMap()["code"])
}

func TestReadLine(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("one\r\ntwo"))

	got, err := ReadLine(r)
	require.NoError(t, err)
	assert.Equal(t, "one", got)

	got, err = ReadLine(r)
	require.NoError(t, err)
	assert.Equal(t, "two", got)

	_, err = ReadLine(r)
	assert.Error(t, err)
}

func TestNewApp_CreatesUserInStore(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.DataDir = filepath.Join(t.TempDir(), "data")
	c.SecretKey = "test"

	a, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	a.PasswordStdin = true
	a.reader = bufio.NewReader(strings.NewReader("pw1\npw2\n"))
	a.out = &bytes.Buffer{}

	require.NoError(t, a.CreateUser(context.Background(), "1", "alice"))
	err = a.CreateUser(context.Background(), "2", "alice")
	assert.ErrorIs(t, err, common.ErrUsernameOrIDTaken)
}
