package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/schoolauth/internal/api"
)

type LessonService struct {
	caller Caller
}

func NewLessonService(c Caller) *LessonService {
	return &LessonService{caller: c}
}

func (s *LessonService) List(ctx context.Context) ([]api.CourseLesson, error) {
	var out []api.CourseLesson
	if err := s.caller.DoJSON(ctx, http.MethodGet, api.PathCourseLessons, nil, &out); err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return out, nil
}

// Create needs an ADMIN token.
func (s *LessonService) Create(ctx context.Context, req api.CreateLessonRequest) (*api.CourseLesson, error) {
	var out api.CourseLesson
	if err := s.caller.DoJSON(ctx, http.MethodPost, api.PathCourseLessons, req, &out); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	return &out, nil
}
