package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bigbear/lessons-api/internal/core/domain"
	"github.com/bigbear/lessons-api/internal/core/ports"
)

// ProgressService records lesson completion on the user document.
type ProgressService struct {
	repo   ports.UserRepository
	locker ports.UserLocker
	log    zerolog.Logger
}

// NewProgressService returns a ProgressService. A nil locker disables
// per-user serialization and concurrent updates become last-write-wins.
func NewProgressService(repo ports.UserRepository, locker ports.UserLocker, log zerolog.Logger) *ProgressService {
	return &ProgressService{repo: repo, locker: locker, log: log}
}

// UpdateProgress sets the completion flag selected by input.Kind on the
// user's lesson at input.Coordinate and returns the persisted lesson list.
// A coordinate the user has no entry for, or an unknown kind, leaves the
// list unchanged.
func (s *ProgressService) UpdateProgress(ctx context.Context, in ports.UpdateProgressInput) ([]domain.LessonProgress, error) {
	if in.UserID == "" {
		return nil, domain.NewValidationError("teacherId is required")
	}

	if s.locker != nil {
		leaseCtx, unlock, err := s.locker.Lock(ctx, in.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrProgressLocked) {
				return nil, err
			}
			return nil, fmt.Errorf("update progress: lock: %w", err)
		}
		defer unlock()
		ctx = leaseCtx
	}

	user, err := s.repo.FindByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update progress: %w", err)
	}

	user.Lessons = domain.MergeProgress(user.Lessons, in.Coordinate, in.Kind)

	// A lease that ran out during the read may already belong to another
	// request; saving now would overwrite its update.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("update progress: %w: %v", domain.ErrProgressLocked, err)
	}

	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update progress: save: %w", err)
	}

	s.log.Info().
		Str("user_id", in.UserID).
		Str("lesson", in.Coordinate.String()).
		Str("kind", in.Kind.String()).
		Msg("progress updated")

	return saved.Lessons, nil
}
