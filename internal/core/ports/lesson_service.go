package ports

import (
	"context"

	"github.com/bigbear/lessons-api/internal/core/domain"
)

type LessonService interface {
	ListLessons(ctx context.Context, filter domain.LessonFilter) ([]*domain.Lesson, error)
	GetLesson(ctx context.Context, coord domain.LessonCoordinate) (*domain.Lesson, error)
}
