package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/schoolauth/internal/api"
)

// QuestionService reads and writes lesson test questions. Writes need a
// USER or ADMIN token.
type QuestionService struct {
	caller Caller
}

func NewQuestionService(c Caller) *QuestionService {
	return &QuestionService{caller: c}
}

// List returns the questions of a lesson, or all of them when lessonID is empty.
func (s *QuestionService) List(ctx context.Context, lessonID string) ([]api.TestQuestion, error) {
	path := api.PathTestQuestions
	if lessonID != "" {
		path += "?" + url.Values{"lessonId": {lessonID}}.Encode()
	}
	var out []api.TestQuestion
	if err := s.caller.DoJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return out, nil
}

func (s *QuestionService) Create(ctx context.Context, req api.CreateQuestionRequest) (*api.TestQuestion, error) {
	var out api.TestQuestion
	if err := s.caller.DoJSON(ctx, http.MethodPost, api.PathTestQuestions, req, &out); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return &out, nil
}

func (s *QuestionService) AddAnswer(ctx context.Context, questionID string, req api.CreateAnswerRequest) (*api.TestAnswer, error) {
	var out api.TestAnswer
	path := api.PathTestQuestions + "/" + url.PathEscape(questionID) + "/answers"
	if err := s.caller.DoJSON(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, fmt.Errorf("add answer: %w", err)
	}
	return &out, nil
}
