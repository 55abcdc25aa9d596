// Package users stores school accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/schoolauth/internal/server/models"
)

// Repository persists users. Create fails with common.ErrorAlreadyExists on
// a duplicate email; lookups return common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
