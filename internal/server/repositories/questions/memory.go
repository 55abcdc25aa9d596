package questions

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/dmitrijs2005/schoolauth/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu        sync.RWMutex
	questions []models.Question
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) CreateQuestion(_ context.Context, q *models.Question) (*models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *q
	stored.ID = uuid.NewString()
	stored.Answers = nil
	r.questions = append(r.questions, stored)

	out := stored
	out.Answers = []models.Answer{}
	return &out, nil
}

func (r *MemoryRepository) ListQuestions(_ context.Context, lessonID string) ([]models.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Question{}
	for _, q := range r.questions {
		if lessonID != "" && q.LessonID != lessonID {
			continue
		}
		c := q
		c.Answers = append([]models.Answer{}, q.Answers...)
		out = append(out, c)
	}
	return out, nil
}

func (r *MemoryRepository) CreateAnswer(_ context.Context, a *models.Answer) (*models.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.questions {
		if r.questions[i].ID != a.QuestionID {
			continue
		}
		stored := *a
		stored.ID = uuid.NewString()
		r.questions[i].Answers = append(r.questions[i].Answers, stored)
		return &stored, nil
	}
	return nil, common.ErrorNotFound
}
