package pending

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pendingCols = []string{"id", "email", "nickname", "password_hash", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+pending_accounts\s*\(id,\s*email,\s*nickname,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+created_at\s*$`
	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs(sqlmock.AnyArg(), "a@x.com", "alice", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	got, err := repo.Create(context.Background(), &models.PendingAccount{Email: "a@x.com", Nickname: "alice", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Len(t, got.ID, 36)
	assert.Equal(t, now, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+pending_accounts`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.PendingAccount{Email: "a@x.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db down")
}

func TestFindByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	q := `(?s)^SELECT\s+id,\s*email,\s*nickname,\s*password_hash,\s*created_at\s+FROM\s+pending_accounts\s+WHERE\s+id\s*=\s*\$1$`
	mock.ExpectQuery(q).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(pendingCols).AddRow("p-1", "a@x.com", "alice", "hash", now))

	got, err := repo.FindByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, &models.PendingAccount{ID: "p-1", Email: "a@x.com", Nickname: "alice", PasswordHash: "hash", CreatedAt: now}, got)
}

func TestFindByIDForUpdate_LocksRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.+\s+FROM\s+pending_accounts\s+WHERE\s+id\s*=\s*\$1\s+FOR\s+UPDATE$`
	mock.ExpectQuery(q).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(pendingCols).AddRow("p-1", "a@x.com", "alice", "hash", time.Now()))

	got, err := repo.FindByIDForUpdate(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+pending_accounts`).WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFindByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+pending_accounts`).WillReturnError(errors.New("db err"))

	_, err := repo.FindByIDForUpdate(context.Background(), "p-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	q := `(?s)^SELECT\s+.+\s+FROM\s+pending_accounts\s+ORDER\s+BY\s+created_at,\s*id\s+OFFSET\s+\$1\s+LIMIT\s+\$2$`
	mock.ExpectQuery(q).
		WithArgs(0, 100).
		WillReturnRows(sqlmock.NewRows(pendingCols).
			AddRow("p-1", "a@x.com", "alice", "h", now).
			AddRow("p-2", "A@X.com", "alice", "h", now))

	got, err := repo.List(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p-2", got[1].ID)
}

func TestList_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+pending_accounts`).WillReturnError(errors.New("db err"))

	_, err := repo.List(context.Background(), 0, 100)
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	q := `(?s)^DELETE\s+FROM\s+pending_accounts\s+WHERE\s+id\s*=\s*\$1$`

	t.Run("ok", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.Delete(context.Background(), "p-1"))
	})

	t.Run("missing row is fine", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).WithArgs("p-1").WillReturnResult(sqlmock.NewResult(0, 0))
		assert.NoError(t, repo.Delete(context.Background(), "p-1"))
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(q).WillReturnError(errors.New("db err"))
		assert.Error(t, repo.Delete(context.Background(), "p-1"))
	})
}
