package domain

import "fmt"

// LessonCoordinate identifies a lesson by its level, book and lesson number.
type LessonCoordinate struct {
	Level  int
	Book   int
	Lesson int
}

func (c LessonCoordinate) String() string {
	return fmt.Sprintf("%d/%d/%d", c.Level, c.Book, c.Lesson)
}

// Lesson is a catalog entry. Content fields are opaque to the service.
//
// The Completed* flags are catalog-level template defaults; per-user state
// lives on User.Lessons and nothing in the service mutates these.
type Lesson struct {
	ID                   string
	Level                int
	Book                 int
	Lesson               int
	InteractiveContent   string
	SongsVideosContent   string
	GameContent          string
	WarmUpContent        string
	MoreContent          string
	CompletedInteractive bool
	CompletedSongsVideos bool
	CompletedGames       bool
	CompletedWarmUp      bool
	CompletedMore        bool
}

// Coordinate returns the natural key of the lesson.
func (l Lesson) Coordinate() LessonCoordinate {
	return LessonCoordinate{Level: l.Level, Book: l.Book, Lesson: l.Lesson}
}

// LessonFilter narrows a catalog listing. Nil fields are not filtered on.
type LessonFilter struct {
	Level *int
	Book  *int
}
