// Package pending stores signups awaiting email confirmation.
package pending

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.PendingAccount) (*models.PendingAccount, error)
	FindByID(ctx context.Context, id string) (*models.PendingAccount, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id string) (*models.PendingAccount, error)
	List(ctx context.Context, offset, limit int) ([]*models.PendingAccount, error)
	Delete(ctx context.Context, id string) error
}
