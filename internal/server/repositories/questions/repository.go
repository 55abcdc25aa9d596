// Package questions stores lesson test questions and their answers.
package questions

import (
	"context"

	"github.com/dmitrijs2005/schoolauth/internal/server/models"
)

// Repository persists questions. CreateAnswer on an unknown question
// returns common.ErrorNotFound.
type Repository interface {
	CreateQuestion(ctx context.Context, q *models.Question) (*models.Question, error)
	// ListQuestions returns questions with their answers; an empty lessonID
	// lists every lesson.
	ListQuestions(ctx context.Context, lessonID string) ([]models.Question, error)
	CreateAnswer(ctx context.Context, a *models.Answer) (*models.Answer, error)
}
