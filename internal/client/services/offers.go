package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/schoolauth/internal/api"
)

// OfferService manages course offers and their purchases. Create, Approve
// and Reject need an ADMIN token; the backend answers 403 otherwise.
type OfferService struct {
	caller Caller
}

func NewOfferService(c Caller) *OfferService {
	return &OfferService{caller: c}
}

func (s *OfferService) List(ctx context.Context) ([]api.Offer, error) {
	var out []api.Offer
	if err := s.caller.DoJSON(ctx, http.MethodGet, api.PathOffers, nil, &out); err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	return out, nil
}

func (s *OfferService) Create(ctx context.Context, req api.CreateOfferRequest) (*api.Offer, error) {
	var out api.Offer
	if err := s.caller.DoJSON(ctx, http.MethodPost, api.PathOffers, req, &out); err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	return &out, nil
}

// Purchase creates a PENDING purchase of the offer for the current user.
func (s *OfferService) Purchase(ctx context.Context, offerID string) (*api.UserOffer, error) {
	return s.userOffer(ctx, http.MethodPost, offerPath(offerID, "purchase"), "purchase offer")
}

func (s *OfferService) Approve(ctx context.Context, userOfferID string) (*api.UserOffer, error) {
	return s.userOffer(ctx, http.MethodPut, offerPath(userOfferID, "approve"), "approve purchase")
}

func (s *OfferService) Reject(ctx context.Context, userOfferID string) (*api.UserOffer, error) {
	return s.userOffer(ctx, http.MethodPut, offerPath(userOfferID, "reject"), "reject purchase")
}

func (s *OfferService) Pending(ctx context.Context, userID string) ([]api.UserOffer, error) {
	return s.userOffers(ctx, userID, "pending")
}

func (s *OfferService) Approved(ctx context.Context, userID string) ([]api.UserOffer, error) {
	return s.userOffers(ctx, userID, "approved")
}

func (s *OfferService) Rejected(ctx context.Context, userID string) ([]api.UserOffer, error) {
	return s.userOffers(ctx, userID, "rejected")
}

// Purchases lists the user's purchases that were not rejected.
func (s *OfferService) Purchases(ctx context.Context, userID string) ([]api.UserOffer, error) {
	return s.userOffers(ctx, userID, "purchases")
}

func (s *OfferService) userOffers(ctx context.Context, userID, listing string) ([]api.UserOffer, error) {
	var out []api.UserOffer
	path := api.PathOffers + "/user/" + url.PathEscape(userID) + "/" + listing
	if err := s.caller.DoJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("%s purchases: %w", listing, err)
	}
	return out, nil
}

// Access reports whether the user holds an approved, unexpired purchase.
func (s *OfferService) Access(ctx context.Context, userID string) (*api.AccessResponse, error) {
	var out api.AccessResponse
	path := api.PathOffers + "/user/" + url.PathEscape(userID) + "/access"
	if err := s.caller.DoJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("offer access: %w", err)
	}
	return &out, nil
}

func (s *OfferService) userOffer(ctx context.Context, method, path, op string) (*api.UserOffer, error) {
	var out api.UserOffer
	if err := s.caller.DoJSON(ctx, method, path, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &out, nil
}

func offerPath(id, action string) string {
	return api.PathOffers + "/" + url.PathEscape(id) + "/" + action
}
