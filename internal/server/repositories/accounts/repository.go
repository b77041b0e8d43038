// Package accounts stores confirmed accounts.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByNickname(ctx context.Context, nickname string) (*models.Account, error)
	FindByEmailOrNickname(ctx context.Context, email, nickname string) (*models.Account, error)
	List(ctx context.Context, offset, limit int) ([]*models.Account, error)
	DeleteByNickname(ctx context.Context, nickname string) (bool, error)
}
