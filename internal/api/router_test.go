package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bigbear/lessons-api/internal/core/domain"
	"github.com/bigbear/lessons-api/internal/core/service"
	"github.com/bigbear/lessons-api/internal/infrastructure/auth"
)

// memUserRepo is an in-memory ports.UserRepository.
type memUserRepo struct {
	mu    sync.Mutex
	users []*domain.User
}

func clone(u *domain.User) *domain.User {
	cp := *u
	cp.Lessons = append([]domain.LessonProgress(nil), u.Lessons...)
	return &cp
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return clone(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	stored := clone(user)
	stored.ID = fmt.Sprintf("u%d", len(r.users)+1)
	r.users = append(r.users, stored)
	return clone(stored), nil
}

func (r *memUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = clone(user)
			return clone(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, clone(u))
	}
	return out, nil
}

type emptyCatalog struct{}

func (emptyCatalog) List(context.Context, domain.LessonFilter) ([]*domain.Lesson, error) {
	return nil, nil
}

func (emptyCatalog) FindByCoordinate(context.Context, domain.LessonCoordinate) (*domain.Lesson, error) {
	return nil, domain.ErrLessonNotFound
}

func newTestRouter(t *testing.T) (*echo.Echo, *memUserRepo) {
	t.Helper()

	repo := &memUserRepo{}
	tokens, err := auth.NewTokenManager("test-secret")
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	log := zerolog.Nop()

	e := NewRouter(Dependencies{
		Auth:     service.NewAuthService(repo, auth.NewBcryptHasher(bcrypt.MinCost), tokens, log),
		Users:    service.NewUserService(repo),
		Progress: service.NewProgressService(repo, nil, log),
		Lessons:  service.NewLessonService(emptyCatalog{}),
		Tokens:   tokens,
		Logger:   log,
		Metrics:  prometheus.NewRegistry(),
	})
	return e, repo
}

func do(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return resp.Message
}

func login(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := do(e, http.MethodPost, "/login", `{"email":"ann@x.com","password":"secret123"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Token == "" {
		t.Fatalf("login returned no token")
	}
	return resp.Token
}

const annSignup = `{"name":"Ann","email":"ann@x.com","password":"secret123"}`

func TestRouter_Root(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/", "", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "Big Bear Backend is Running" {
		t.Fatalf("unexpected response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestRouter_SignupDuplicate(t *testing.T) {
	e, _ := newTestRouter(t)

	if rec := do(e, http.MethodPost, "/signup", annSignup, ""); rec.Code != http.StatusCreated {
		t.Fatalf("first signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec := do(e, http.MethodPost, "/signup", annSignup, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second signup: expected 400, got %d", rec.Code)
	}
	if msg := message(t, rec); msg != "User already exists" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRouter_Login(t *testing.T) {
	e, _ := newTestRouter(t)
	do(e, http.MethodPost, "/signup", annSignup, "")

	login(t, e)

	rec := do(e, http.MethodPost, "/login", `{"email":"ann@x.com","password":"wrong"}`, "")
	if rec.Code != http.StatusBadRequest || message(t, rec) != "Invalid credentials" {
		t.Fatalf("wrong password: got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodPost, "/login", `{"email":"bob@x.com","password":"secret123"}`, "")
	if rec.Code != http.StatusNotFound || message(t, rec) != "User not found" {
		t.Fatalf("unknown email: got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_UsersRequiresToken(t *testing.T) {
	e, _ := newTestRouter(t)
	do(e, http.MethodPost, "/signup", annSignup, "")

	rec := do(e, http.MethodGet, "/users", "", "")
	if rec.Code != http.StatusUnauthorized || message(t, rec) != "No token, authorization denied" {
		t.Fatalf("no token: got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/users", "", "not-a-token")
	if rec.Code != http.StatusUnauthorized || message(t, rec) != "Token is not valid" {
		t.Fatalf("bad token: got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/users", "", login(t, e))
	if rec.Code != http.StatusOK {
		t.Fatalf("with token: expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("user listing leaks password: %s", rec.Body.String())
	}
}

func TestRouter_UpdateProgressGame(t *testing.T) {
	e, repo := newTestRouter(t)
	do(e, http.MethodPost, "/signup", annSignup, "")
	repo.users[0].Lessons = []domain.LessonProgress{{Level: 1, Book: 1, Lesson: 1}}
	token := login(t, e)

	rec := do(e, http.MethodPost, "/update-progress",
		`{"teacherId":"u1","level":1,"book":1,"lesson":1,"type":"game"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Message string                  `json:"message"`
		Lessons []domain.LessonProgress `json:"lessons"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Progress updated successfully" || len(resp.Lessons) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !resp.Lessons[0].CompletedGame || resp.Lessons[0].CompletedInteractive {
		t.Fatalf("unexpected flags: %+v", resp.Lessons[0])
	}
	if !repo.users[0].Lessons[0].CompletedGame {
		t.Fatalf("progress not persisted")
	}
}

func TestRouter_UpdateProgressTypeIsCaseSensitive(t *testing.T) {
	e, repo := newTestRouter(t)
	do(e, http.MethodPost, "/signup", annSignup, "")
	repo.users[0].Lessons = []domain.LessonProgress{{Level: 1, Book: 1, Lesson: 1}}

	rec := do(e, http.MethodPost, "/update-progress",
		`{"teacherId":"u1","level":1,"book":1,"lesson":1,"type":"GAME"}`, login(t, e))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Lessons []domain.LessonProgress `json:"lessons"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Lessons) != 1 || resp.Lessons[0].CompletedGame || resp.Lessons[0].CompletedInteractive {
		t.Fatalf("unrecognised type changed flags: %+v", resp.Lessons)
	}
	if repo.users[0].Lessons[0].CompletedGame {
		t.Fatalf("unrecognised type persisted a flag")
	}
}

func TestRouter_SignupMultibytePasswordTooLong(t *testing.T) {
	e, repo := newTestRouter(t)

	body := `{"name":"Ann","email":"ann@x.com","password":"` + strings.Repeat("é", 40) + `"}`
	rec := do(e, http.MethodPost, "/signup", body, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if msg := message(t, rec); msg != "password must be at most 72 bytes" {
		t.Fatalf("unexpected message %q", msg)
	}
	if len(repo.users) != 0 {
		t.Fatalf("user must not be created")
	}
}

func TestRouter_UpdateProgressOtherUser(t *testing.T) {
	e, _ := newTestRouter(t)
	do(e, http.MethodPost, "/signup", annSignup, "")

	rec := do(e, http.MethodPost, "/update-progress",
		`{"teacherId":"u9","level":1,"book":1,"lesson":1,"type":"game"}`, login(t, e))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_LessonNotFound(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/lessons/1/1/1", "", "")
	if rec.Code != http.StatusNotFound || message(t, rec) != "Lesson not found" {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_Metrics(t *testing.T) {
	e, _ := newTestRouter(t)
	do(e, http.MethodGet, "/health", "", "")

	rec := do(e, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "requests_total") {
		t.Fatalf("missing request metrics:\n%s", rec.Body.String())
	}
}
