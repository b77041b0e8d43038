package pending

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

func (r *PostgresRepository) Create(ctx context.Context, p *models.PendingAccount) (*models.PendingAccount, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO pending_accounts (id, email, nickname, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, p.ID, p.Email, p.Nickname, p.PasswordHash).Scan(&p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

const selectPending = `SELECT id, email, nickname, password_hash, created_at FROM pending_accounts`

func (r *PostgresRepository) findOne(ctx context.Context, query string, id string) (*models.PendingAccount, error) {
	p := &models.PendingAccount{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Email, &p.Nickname, &p.PasswordHash, &p.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.PendingAccount, error) {
	return r.findOne(ctx, selectPending+` WHERE id = $1`, id)
}

func (r *PostgresRepository) FindByIDForUpdate(ctx context.Context, id string) (*models.PendingAccount, error) {
	return r.findOne(ctx, selectPending+` WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]*models.PendingAccount, error) {
	query := selectPending + ` ORDER BY created_at, id OFFSET $1 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.PendingAccount, 0)
	for rows.Next() {
		p := &models.PendingAccount{}
		if err := rows.Scan(&p.ID, &p.Email, &p.Nickname, &p.PasswordHash, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Delete removes the pending row. Deleting a missing row is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM pending_accounts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
