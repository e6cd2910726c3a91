package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bigbear/lessons-api/internal/core/domain"
	"github.com/bigbear/lessons-api/internal/core/ports"
)

type LessonHandler struct {
	lessonService ports.LessonService
}

func NewLessonHandler(lessonService ports.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

// List handles GET /lessons.
//
// @Summary      List catalog lessons
// @Tags         lessons
// @Produce      json
// @Param        level  query     int  false  "Filter by level"
// @Param        book   query     int  false  "Filter by book"
// @Success      200    {array}   lessonResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /lessons [get]
func (h *LessonHandler) List(c echo.Context) error {
	level, err := optionalIntQuery(c, "level")
	if err != nil {
		return err
	}
	book, err := optionalIntQuery(c, "book")
	if err != nil {
		return err
	}

	lessons, err := h.lessonService.ListLessons(c.Request().Context(), domain.LessonFilter{Level: level, Book: book})
	if err != nil {
		return err
	}

	resp := make([]lessonResponse, 0, len(lessons))
	for _, l := range lessons {
		resp = append(resp, newLessonResponse(l))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /lessons/:level/:book/:lesson.
//
// @Summary      Get a catalog lesson
// @Tags         lessons
// @Produce      json
// @Param        level   path      int  true  "Level"
// @Param        book    path      int  true  "Book"
// @Param        lesson  path      int  true  "Lesson"
// @Success      200     {object}  lessonResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /lessons/{level}/{book}/{lesson} [get]
func (h *LessonHandler) Get(c echo.Context) error {
	var coord domain.LessonCoordinate
	err := echo.PathParamsBinder(c).
		MustInt("level", &coord.Level).
		MustInt("book", &coord.Book).
		MustInt("lesson", &coord.Lesson).
		BindError()
	if err != nil {
		return domain.NewValidationError("level, book and lesson must be integers")
	}

	lesson, err := h.lessonService.GetLesson(c.Request().Context(), coord)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newLessonResponse(lesson))
}

// optionalIntQuery returns nil when the parameter is absent.
func optionalIntQuery(c echo.Context, name string) (*int, error) {
	if c.QueryParam(name) == "" {
		return nil, nil
	}
	var v int
	if err := echo.QueryParamsBinder(c).Int(name, &v).BindError(); err != nil {
		return nil, domain.NewValidationError(name + " must be an integer")
	}
	return &v, nil
}
