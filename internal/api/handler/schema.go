package handler

import (
	"github.com/bigbear/lessons-api/internal/core/domain"
)

// --- Requests ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// updateProgressRequest uses pointers so that a missing coordinate is told
// apart from lesson 0.
type updateProgressRequest struct {
	TeacherID string `json:"teacherId"`
	Level     *int   `json:"level"  validate:"required"`
	Book      *int   `json:"book"   validate:"required"`
	Lesson    *int   `json:"lesson" validate:"required"`
	Type      string `json:"type"   validate:"required"`
}

// --- Responses ---

// ErrorResponse is the envelope of every 4xx/5xx response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// userResponse is the public projection of a user; the password hash never
// leaves the service.
type userResponse struct {
	ID      string                  `json:"id"`
	Name    string                  `json:"name"`
	Email   string                  `json:"email"`
	Lessons []domain.LessonProgress `json:"lessons"`
}

func newUserResponse(u *domain.User) userResponse {
	lessons := u.Lessons
	if lessons == nil {
		lessons = []domain.LessonProgress{}
	}
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Lessons: lessons}
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type progressResponse struct {
	Message string                  `json:"message"`
	Lessons []domain.LessonProgress `json:"lessons"`
}

type lessonResponse struct {
	ID                   string `json:"id"`
	Level                int    `json:"level"`
	Book                 int    `json:"book"`
	Lesson               int    `json:"lesson"`
	InteractiveContent   string `json:"interactiveContent,omitempty"`
	SongsVideosContent   string `json:"songsVideosContent,omitempty"`
	GameContent          string `json:"gameContent,omitempty"`
	WarmUpContent        string `json:"warmUpContent,omitempty"`
	MoreContent          string `json:"moreContent,omitempty"`
	CompletedInteractive bool   `json:"completedInteractive"`
	CompletedSongsVideos bool   `json:"completedSongsVideos"`
	CompletedGames       bool   `json:"completedGames"`
	CompletedWarmUp      bool   `json:"completedWarmUp"`
	CompletedMore        bool   `json:"completedMore"`
}

func newLessonResponse(l *domain.Lesson) lessonResponse {
	return lessonResponse{
		ID:                   l.ID,
		Level:                l.Level,
		Book:                 l.Book,
		Lesson:               l.Lesson,
		InteractiveContent:   l.InteractiveContent,
		SongsVideosContent:   l.SongsVideosContent,
		GameContent:          l.GameContent,
		WarmUpContent:        l.WarmUpContent,
		MoreContent:          l.MoreContent,
		CompletedInteractive: l.CompletedInteractive,
		CompletedSongsVideos: l.CompletedSongsVideos,
		CompletedGames:       l.CompletedGames,
		CompletedWarmUp:      l.CompletedWarmUp,
		CompletedMore:        l.CompletedMore,
	}
}
