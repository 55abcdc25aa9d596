package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/api"
	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/dmitrijs2005/schoolauth/internal/dbx"
	"github.com/dmitrijs2005/schoolauth/internal/server/models"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/repomanager"
)

// OfferService sells offers. A purchase starts PENDING and an admin moves
// it to APPROVED or REJECTED; an approved purchase grants course access
// until it expires, DurationHours after it was made.
type OfferService struct {
	tx    dbx.Transactor
	repos repomanager.RepositoryManager
	now   func() time.Time
}

func NewOfferService(tx dbx.Transactor, repos repomanager.RepositoryManager) *OfferService {
	return &OfferService{tx: tx, repos: repos, now: func() time.Time { return time.Now().UTC() }}
}

func (s *OfferService) List(ctx context.Context) ([]models.Offer, error) {
	return s.repos.Offers(s.tx.Conn()).ListOffers(ctx)
}

func (s *OfferService) Create(ctx context.Context, o models.Offer) (*models.Offer, error) {
	if strings.TrimSpace(o.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if o.Price < 0 || o.DurationHours < 0 {
		return nil, fmt.Errorf("%w: price and duration must not be negative", common.ErrorValidation)
	}
	return s.repos.Offers(s.tx.Conn()).CreateOffer(ctx, &o)
}

// Purchase creates a PENDING purchase of the offer. If the user already holds
// a purchase of it that is neither rejected nor expired, that one is returned.
func (s *OfferService) Purchase(ctx context.Context, userID, offerID string) (*models.UserOffer, error) {
	var uo *models.UserOffer
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Offers(tx)
		offer, err := repo.GetOffer(ctx, offerID)
		if err != nil {
			return err
		}

		now := s.now()
		existing, err := repo.FindActiveUserOffer(ctx, userID, offerID, now)
		if err == nil {
			uo = existing
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		uo, err = repo.CreateUserOffer(ctx, &models.UserOffer{
			UserID:    userID,
			OfferID:   offerID,
			Status:    api.StatusPending,
			ExpiresAt: now.Add(time.Duration(offer.DurationHours) * time.Hour),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return uo, nil
}

func (s *OfferService) Approve(ctx context.Context, userOfferID string) (*models.UserOffer, error) {
	return s.decide(ctx, userOfferID, api.StatusApproved)
}

func (s *OfferService) Reject(ctx context.Context, userOfferID string) (*models.UserOffer, error) {
	return s.decide(ctx, userOfferID, api.StatusRejected)
}

func (s *OfferService) decide(ctx context.Context, userOfferID, status string) (*models.UserOffer, error) {
	var uo *models.UserOffer
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Offers(tx)
		current, err := repo.GetUserOffer(ctx, userOfferID)
		if err != nil {
			return err
		}
		if current.Status != api.StatusPending {
			return fmt.Errorf("%w: purchase is already %s", common.ErrorValidation, current.Status)
		}
		uo, err = repo.SetUserOfferStatus(ctx, userOfferID, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	return uo, nil
}

func (s *OfferService) Pending(ctx context.Context, userID string) ([]models.UserOffer, error) {
	return s.repos.Offers(s.tx.Conn()).ListUserOffers(ctx, userID, api.StatusPending)
}

func (s *OfferService) Approved(ctx context.Context, userID string) ([]models.UserOffer, error) {
	return s.repos.Offers(s.tx.Conn()).ListUserOffers(ctx, userID, api.StatusApproved)
}

func (s *OfferService) Rejected(ctx context.Context, userID string) ([]models.UserOffer, error) {
	return s.repos.Offers(s.tx.Conn()).ListUserOffers(ctx, userID, api.StatusRejected)
}

// Purchases lists every purchase of the user that was not rejected.
func (s *OfferService) Purchases(ctx context.Context, userID string) ([]models.UserOffer, error) {
	all, err := s.repos.Offers(s.tx.Conn()).ListUserOffers(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	out := make([]models.UserOffer, 0, len(all))
	for _, uo := range all {
		if uo.Status != api.StatusRejected {
			out = append(out, uo)
		}
	}
	return out, nil
}

// HasAccess reports whether the user holds an approved purchase that has
// not expired yet.
func (s *OfferService) HasAccess(ctx context.Context, userID string) (bool, error) {
	approved, err := s.repos.Offers(s.tx.Conn()).ListUserOffers(ctx, userID, api.StatusApproved)
	if err != nil {
		return false, err
	}
	now := s.now()
	for _, uo := range approved {
		if uo.ExpiresAt.After(now) {
			return true, nil
		}
	}
	return false, nil
}
