package ports

import (
	"context"

	"github.com/bigbear/lessons-api/internal/core/domain"
)

// UpdateProgressInput is the DTO passed from the transport layer to ProgressService.
type UpdateProgressInput struct {
	UserID     string
	Coordinate domain.LessonCoordinate
	Kind       domain.ProgressKind
}

type ProgressService interface {
	UpdateProgress(ctx context.Context, input UpdateProgressInput) ([]domain.LessonProgress, error)
}
