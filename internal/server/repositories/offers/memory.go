package offers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/api"
	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/dmitrijs2005/schoolauth/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu         sync.RWMutex
	offers     map[string]models.Offer
	userOffers map[string]models.UserOffer
	now        func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		offers:     map[string]models.Offer{},
		userOffers: map[string]models.UserOffer{},
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) CreateOffer(_ context.Context, offer *models.Offer) (*models.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := *offer
	o.ID = uuid.NewString()
	o.CreatedAt = r.now()
	r.offers[o.ID] = o
	return &o, nil
}

func (r *MemoryRepository) ListOffers(_ context.Context) ([]models.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Offer, 0, len(r.offers))
	for _, o := range r.offers {
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepository) GetOffer(_ context.Context, id string) (*models.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.offers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &o, nil
}

func (r *MemoryRepository) CreateUserOffer(_ context.Context, in *models.UserOffer) (*models.UserOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offers[in.OfferID]; !ok {
		return nil, common.ErrorNotFound
	}
	now := r.now()
	uo := models.UserOffer{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		OfferID:   in.OfferID,
		Status:    in.Status,
		ExpiresAt: in.ExpiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.userOffers[uo.ID] = uo
	return &uo, nil
}

func (r *MemoryRepository) GetUserOffer(_ context.Context, id string) (*models.UserOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	uo, ok := r.userOffers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &uo, nil
}

func (r *MemoryRepository) FindActiveUserOffer(_ context.Context, userID, offerID string, at time.Time) (*models.UserOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *models.UserOffer
	for _, uo := range r.userOffers {
		if uo.UserID != userID || uo.OfferID != offerID || uo.Status == api.StatusRejected || !uo.ExpiresAt.After(at) {
			continue
		}
		if found == nil || uo.CreatedAt.After(found.CreatedAt) {
			found = &uo
		}
	}
	if found == nil {
		return nil, common.ErrorNotFound
	}
	return found, nil
}

func (r *MemoryRepository) SetUserOfferStatus(_ context.Context, id, status string) (*models.UserOffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	uo, ok := r.userOffers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	uo.Status = status
	uo.UpdatedAt = r.now()
	r.userOffers[id] = uo
	return &uo, nil
}

func (r *MemoryRepository) ListUserOffers(_ context.Context, userID, status string) ([]models.UserOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.UserOffer
	for _, uo := range r.userOffers {
		if uo.UserID != userID || (status != "" && uo.Status != status) {
			continue
		}
		out = append(out, uo)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
