package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/dmitrijs2005/schoolauth/internal/dbx"
	"github.com/dmitrijs2005/schoolauth/internal/server/models"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/repomanager"
)

// CourseService manages lessons and their test questions.
type CourseService struct {
	tx    dbx.Transactor
	repos repomanager.RepositoryManager
}

func NewCourseService(tx dbx.Transactor, repos repomanager.RepositoryManager) *CourseService {
	return &CourseService{tx: tx, repos: repos}
}

func (s *CourseService) Lessons(ctx context.Context) ([]models.Lesson, error) {
	return s.repos.Lessons(s.tx.Conn()).List(ctx)
}

func (s *CourseService) CreateLesson(ctx context.Context, l models.Lesson) (*models.Lesson, error) {
	if strings.TrimSpace(l.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	return s.repos.Lessons(s.tx.Conn()).Create(ctx, &l)
}

func (s *CourseService) Questions(ctx context.Context, lessonID string) ([]models.Question, error) {
	return s.repos.Questions(s.tx.Conn()).ListQuestions(ctx, lessonID)
}

// CreateQuestion defaults Points to 1.
func (s *CourseService) CreateQuestion(ctx context.Context, q models.Question) (*models.Question, error) {
	switch {
	case q.LessonID == "":
		return nil, fmt.Errorf("%w: lessonId is required", common.ErrorValidation)
	case strings.TrimSpace(q.Text) == "":
		return nil, fmt.Errorf("%w: text is required", common.ErrorValidation)
	case q.Points < 0:
		return nil, fmt.Errorf("%w: points must not be negative", common.ErrorValidation)
	}
	if q.Points == 0 {
		q.Points = 1
	}
	return s.repos.Questions(s.tx.Conn()).CreateQuestion(ctx, &q)
}

func (s *CourseService) AddAnswer(ctx context.Context, a models.Answer) (*models.Answer, error) {
	if strings.TrimSpace(a.Text) == "" {
		return nil, fmt.Errorf("%w: text is required", common.ErrorValidation)
	}
	return s.repos.Questions(s.tx.Conn()).CreateAnswer(ctx, &a)
}
