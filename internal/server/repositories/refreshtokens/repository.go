// Package refreshtokens stores single-use refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/server/models"
)

// Repository persists refresh tokens. Consume removes the token and returns
// it, so a token can be exchanged at most once; an unknown token yields
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, userID, token string, expiresAt time.Time) error
	Consume(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
}
