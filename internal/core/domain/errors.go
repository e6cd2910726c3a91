package domain

import (
	"errors"
	"strings"
)

var (
	ErrDuplicateEmail     = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("missing token")
	ErrForbidden          = errors.New("access forbidden")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrProgressLocked     = errors.New("progress update already in progress")
)

// ValidationError reports request fields that are missing or malformed.
type ValidationError struct {
	Fields []string
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid request"
	}
	return strings.Join(e.Fields, "; ")
}
