package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bigbear/lessons-api/internal/api/handler"
	"github.com/bigbear/lessons-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusBadRequest, "User already exists"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized, "Token is not valid"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"lesson not found", domain.ErrLessonNotFound, http.StatusNotFound, "Lesson not found"},
		{"locked", domain.ErrProgressLocked, http.StatusConflict, "progress update already in progress"},
		{"wrapped", fmt.Errorf("login: %w", domain.ErrUserNotFound), http.StatusNotFound, "User not found"},
		{"validation", domain.NewValidationError("name is required", "password is required"), http.StatusBadRequest, "name is required; password is required"},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied"), http.StatusUnauthorized, "No token, authorization denied"},
		{"storage", fmt.Errorf("find user: %w", domain.ErrStorageUnavailable), http.StatusInternalServerError, "storage unavailable"},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError, "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/signup", nil), rec)

			h(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp handler.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Message != tc.msg {
				t.Fatalf("expected message %q, got %q", tc.msg, resp.Message)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrUserNotFound, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was overwritten: %d %q", rec.Code, rec.Body.String())
	}
}
