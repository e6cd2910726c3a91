package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bigbear/lessons-api/internal/core/domain"
	"github.com/bigbear/lessons-api/internal/core/ports"
)

// LessonService exposes the read-only lesson catalog.
type LessonService struct {
	repo ports.LessonRepository
}

func NewLessonService(repo ports.LessonRepository) *LessonService {
	return &LessonService{repo: repo}
}

func (s *LessonService) ListLessons(ctx context.Context, filter domain.LessonFilter) ([]*domain.Lesson, error) {
	lessons, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

func (s *LessonService) GetLesson(ctx context.Context, coord domain.LessonCoordinate) (*domain.Lesson, error) {
	lesson, err := s.repo.FindByCoordinate(ctx, coord)
	if err != nil {
		if errors.Is(err, domain.ErrLessonNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get lesson %s: %w", coord, err)
	}
	return lesson, nil
}
