package lessons

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/schoolauth/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	lessons []models.Lesson
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, lesson *models.Lesson) (*models.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l := *lesson
	l.ID = uuid.NewString()
	l.CreatedAt = time.Now().UTC()
	r.lessons = append(r.lessons, l)
	return &l, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]models.Lesson, error) {
	r.mu.RLock()
	out := make([]models.Lesson, len(r.lessons))
	copy(out, r.lessons)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}
