package ports

import (
	"context"

	"github.com/bigbear/lessons-api/internal/core/domain"
)

// LessonRepository provides read access to the lesson catalog.
type LessonRepository interface {
	List(ctx context.Context, filter domain.LessonFilter) ([]*domain.Lesson, error)
	FindByCoordinate(ctx context.Context, coord domain.LessonCoordinate) (*domain.Lesson, error)
}
