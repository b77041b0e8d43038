package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts account under a fresh id unless it already carries one.
// Email or nickname clashes are reported as common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO accounts (id, email, nickname, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Email, account.Nickname, account.PasswordHash).Scan(&account.CreatedAt)

	if err != nil {
		if _, ok := dbx.UniqueViolation(err); ok {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

const selectAccount = `SELECT id, email, nickname, password_hash, created_at FROM accounts`

func (r *PostgresRepository) findOne(ctx context.Context, query string, args ...any) (*models.Account, error) {
	a := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&a.ID, &a.Email, &a.Nickname, &a.PasswordHash, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	return r.findOne(ctx, selectAccount+` WHERE id = $1`, id)
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.findOne(ctx, selectAccount+` WHERE email = $1`, email)
}

func (r *PostgresRepository) FindByNickname(ctx context.Context, nickname string) (*models.Account, error) {
	return r.findOne(ctx, selectAccount+` WHERE nickname = $1`, nickname)
}

// FindByEmailOrNickname returns any account holding email or nickname.
func (r *PostgresRepository) FindByEmailOrNickname(ctx context.Context, email, nickname string) (*models.Account, error) {
	return r.findOne(ctx, selectAccount+` WHERE email = $1 OR nickname = $2 LIMIT 1`, email, nickname)
}

// List returns accounts ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]*models.Account, error) {
	query := selectAccount + ` ORDER BY created_at, id OFFSET $1 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Account, 0)
	for rows.Next() {
		a := &models.Account{}
		if err := rows.Scan(&a.ID, &a.Email, &a.Nickname, &a.PasswordHash, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// DeleteByNickname reports whether an account was removed.
func (r *PostgresRepository) DeleteByNickname(ctx context.Context, nickname string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE nickname = $1`, nickname)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}
