package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bigbear/lessons-api/internal/api/middleware"
	"github.com/bigbear/lessons-api/internal/core/domain"
	"github.com/bigbear/lessons-api/internal/core/ports"
)

type stubProgressService struct {
	fn func(ctx context.Context, in ports.UpdateProgressInput) ([]domain.LessonProgress, error)
}

func (s *stubProgressService) UpdateProgress(ctx context.Context, in ports.UpdateProgressInput) ([]domain.LessonProgress, error) {
	return s.fn(ctx, in)
}

func authed(c echo.Context, userID string) echo.Context {
	c.Set(middleware.ClaimsKey, domain.Claims{UserID: userID, Email: userID + "@x.com"})
	return c
}

func TestProgressHandler_Update_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubProgressService{
		fn: func(ctx context.Context, in ports.UpdateProgressInput) ([]domain.LessonProgress, error) {
			if in.UserID != "t1" || in.Kind != domain.ProgressGame {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Coordinate != (domain.LessonCoordinate{Level: 1, Book: 1, Lesson: 1}) {
				t.Fatalf("unexpected coordinate: %+v", in.Coordinate)
			}
			return []domain.LessonProgress{{Level: 1, Book: 1, Lesson: 1, CompletedGame: true}}, nil
		},
	}
	h := NewProgressHandler(stub)

	c, rec := jsonRequest(e, http.MethodPost, "/update-progress", `{"teacherId":"t1","level":1,"book":1,"lesson":1,"type":"game"}`)
	if err := h.Update(authed(c, "t1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp progressResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Progress updated successfully" || len(resp.Lessons) != 1 || !resp.Lessons[0].CompletedGame {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestProgressHandler_Update_TeacherIDDefaultsToSubject(t *testing.T) {
	e := newTestEcho()
	var got string
	stub := &stubProgressService{
		fn: func(ctx context.Context, in ports.UpdateProgressInput) ([]domain.LessonProgress, error) {
			got = in.UserID
			return nil, nil
		},
	}
	h := NewProgressHandler(stub)

	c, rec := jsonRequest(e, http.MethodPost, "/update-progress", `{"level":0,"book":2,"lesson":3,"type":"interactive"}`)
	if err := h.Update(authed(c, "t1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != "t1" {
		t.Fatalf("expected subject t1, got %q", got)
	}
	if rec.Body.String() == "" || !json.Valid(rec.Body.Bytes()) {
		t.Fatalf("invalid body: %s", rec.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if lessons, ok := resp["lessons"].([]any); !ok || len(lessons) != 0 {
		t.Fatalf("expected empty lessons array, got %#v", resp["lessons"])
	}
}

func TestProgressHandler_Update_OtherUserForbidden(t *testing.T) {
	e := newTestEcho()
	h := NewProgressHandler(&stubProgressService{
		fn: func(ctx context.Context, in ports.UpdateProgressInput) ([]domain.LessonProgress, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	c, _ := jsonRequest(e, http.MethodPost, "/update-progress", `{"teacherId":"someone-else","level":1,"book":1,"lesson":1,"type":"game"}`)
	if err := h.Update(authed(c, "t1")); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProgressHandler_Update_MissingCoordinate(t *testing.T) {
	e := newTestEcho()
	h := NewProgressHandler(&stubProgressService{})

	c, _ := jsonRequest(e, http.MethodPost, "/update-progress", `{"level":1,"type":"game"}`)
	err := h.Update(authed(c, "t1"))

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestProgressHandler_Update_NoClaims(t *testing.T) {
	e := newTestEcho()
	h := NewProgressHandler(&stubProgressService{})

	c, _ := jsonRequest(e, http.MethodPost, "/update-progress", `{"level":1,"book":1,"lesson":1,"type":"game"}`)
	err := h.Update(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestProgressHandler_Update_NotFound(t *testing.T) {
	e := newTestEcho()
	h := NewProgressHandler(&stubProgressService{
		fn: func(ctx context.Context, in ports.UpdateProgressInput) ([]domain.LessonProgress, error) {
			return nil, domain.ErrUserNotFound
		},
	})

	c, _ := jsonRequest(e, http.MethodPost, "/update-progress", `{"level":1,"book":1,"lesson":1,"type":"game"}`)
	if err := h.Update(authed(c, "t1")); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
