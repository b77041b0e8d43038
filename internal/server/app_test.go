package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/pending"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepoManager struct {
	migrateErr error
	// failures makes the first n migration attempts fail.
	failures int
	attempts int
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	m.attempts++
	if m.attempts <= m.failures {
		return errors.New("connection refused")
	}
	return m.migrateErr
}
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}
func (m *fakeRepoManager) Pending(db dbx.DBTX) pending.Repository {
	return pending.NewPostgresRepository(db)
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCAddr = "127.0.0.1:0"
	return c
}

func TestNewApp_Wires(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rm := &fakeRepoManager{}
	app, err := newApp(context.Background(), testConfig(), db, rm, logging.Nop())
	require.NoError(t, err)

	assert.Equal(t, 1, rm.attempts)
	assert.NotNil(t, app.httpServer)
	assert.NotNil(t, app.grpcServer)
}

func TestNewApp_RetriesMigrations(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rm := &fakeRepoManager{failures: 2}
	_, err = newApp(context.Background(), testConfig(), db, rm, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, 3, rm.attempts)
}

func TestNewApp_Errors(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := migrateTimeout
	t.Cleanup(func() { migrateTimeout = orig })
	migrateTimeout = 200 * time.Millisecond

	_, err = newApp(context.Background(), testConfig(), db, &fakeRepoManager{migrateErr: errors.New("boom")}, logging.Nop())
	assert.ErrorContains(t, err, "migrations")

	c := testConfig()
	c.TokenAlgorithm = "RS256"
	_, err = newApp(context.Background(), c, db, &fakeRepoManager{}, logging.Nop())
	assert.ErrorContains(t, err, "token service")

	c = testConfig()
	c.MailTransport = "pigeon"
	_, err = newApp(context.Background(), c, db, &fakeRepoManager{}, logging.Nop())
	assert.ErrorContains(t, err, "mail sender")
}

func TestNewApp_OpenError(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string) (*sql.DB, error) { return nil, errors.New("bad dsn") }

	_, err := NewApp(context.Background(), testConfig())
	assert.ErrorContains(t, err, "db init error")

	c := testConfig()
	c.LogLevel = "loud"
	_, err = NewApp(context.Background(), c)
	assert.ErrorContains(t, err, "unknown log level")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	app, err := newApp(context.Background(), testConfig(), db, &fakeRepoManager{}, logging.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop within timeout after context cancel")
	}
}

func TestRun_StopsWhenServerFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	c := testConfig()
	c.HTTPAddr = "127.0.0.1:99999"

	app, err := newApp(context.Background(), c, db, &fakeRepoManager{}, logging.Nop())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		app.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app kept running after a server failed to start")
	}
}
