// Package offers stores course offers and users' purchases of them.
package offers

import (
	"context"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/server/models"
)

// Repository persists offers and purchases. Lookups of a missing row
// return common.ErrorNotFound.
type Repository interface {
	CreateOffer(ctx context.Context, offer *models.Offer) (*models.Offer, error)
	ListOffers(ctx context.Context) ([]models.Offer, error)
	GetOffer(ctx context.Context, id string) (*models.Offer, error)

	// CreateUserOffer stores a purchase built from UserID, OfferID, Status and ExpiresAt.
	CreateUserOffer(ctx context.Context, uo *models.UserOffer) (*models.UserOffer, error)
	GetUserOffer(ctx context.Context, id string) (*models.UserOffer, error)
	// FindActiveUserOffer returns the latest purchase of the offer by the user
	// that is not rejected and has not expired at the given time.
	FindActiveUserOffer(ctx context.Context, userID, offerID string, at time.Time) (*models.UserOffer, error)
	SetUserOfferStatus(ctx context.Context, id, status string) (*models.UserOffer, error)
	// ListUserOffers returns the user's purchases, all of them when status is empty.
	ListUserOffers(ctx context.Context, userID, status string) ([]models.UserOffer, error)
}
