package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bigbear/lessons-api/internal/api/metrics"
	"github.com/bigbear/lessons-api/internal/core/domain"
	"github.com/bigbear/lessons-api/internal/core/ports"
)

type ProgressHandler struct {
	progressService ports.ProgressService
}

func NewProgressHandler(progressService ports.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// Update handles POST /update-progress. The user is the token subject; a
// teacherId naming anyone else is rejected.
//
// @Summary      Mark a lesson activity as completed
// @Tags         progress
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      updateProgressRequest  true  "Lesson coordinate and activity type (interactive|game)"
// @Success      200   {object}  progressResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /update-progress [post]
func (h *ProgressHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	kind := domain.ParseProgressKind(req.Type)
	if err := c.Validate(&req); err != nil {
		metrics.ProgressUpdatesTotal.WithLabelValues(kind.String(), metrics.Result(err)).Inc()
		return err
	}
	if req.TeacherID != "" && req.TeacherID != claims.UserID {
		metrics.ProgressUpdatesTotal.WithLabelValues(kind.String(), metrics.Result(domain.ErrForbidden)).Inc()
		return domain.ErrForbidden
	}

	lessons, err := h.progressService.UpdateProgress(c.Request().Context(), ports.UpdateProgressInput{
		UserID: claims.UserID,
		Coordinate: domain.LessonCoordinate{
			Level:  *req.Level,
			Book:   *req.Book,
			Lesson: *req.Lesson,
		},
		Kind: kind,
	})
	metrics.ProgressUpdatesTotal.WithLabelValues(kind.String(), metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	if lessons == nil {
		lessons = []domain.LessonProgress{}
	}
	return c.JSON(http.StatusOK, progressResponse{
		Message: "Progress updated successfully",
		Lessons: lessons,
	})
}
