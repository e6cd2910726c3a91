package domain

// User models a registered account together with its lesson progress.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Lessons      []LessonProgress
}

// LessonProgress is the completion state of one lesson for one user.
type LessonProgress struct {
	Level                int  `json:"level"`
	Book                 int  `json:"book"`
	Lesson               int  `json:"lesson"`
	CompletedInteractive bool `json:"completedInteractive"`
	CompletedGame        bool `json:"completedGame"`
}

// Coordinate returns the (level, book, lesson) triple of the entry.
func (p LessonProgress) Coordinate() LessonCoordinate {
	return LessonCoordinate{Level: p.Level, Book: p.Book, Lesson: p.Lesson}
}

// Claims is the identity carried by a session token.
type Claims struct {
	UserID string
	Email  string
}
