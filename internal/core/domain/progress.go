package domain

// ProgressKind selects which completion flag a progress update sets.
type ProgressKind int

const (
	ProgressUnknown ProgressKind = iota
	ProgressInteractive
	ProgressGame
)

// ParseProgressKind maps the wire value of "type" to a ProgressKind.
// Matching is exact; any other value, including "GAME", yields
// ProgressUnknown, which MergeProgress ignores.
func ParseProgressKind(s string) ProgressKind {
	switch s {
	case "interactive":
		return ProgressInteractive
	case "game":
		return ProgressGame
	default:
		return ProgressUnknown
	}
}

func (k ProgressKind) String() string {
	switch k {
	case ProgressInteractive:
		return "interactive"
	case ProgressGame:
		return "game"
	default:
		return "unknown"
	}
}

// MergeProgress returns a copy of lessons in which every entry at coord has
// the flag selected by kind set to true. Flags are never cleared, so applying
// the same update again yields the same slice. When no entry matches, or kind
// is ProgressUnknown, the copy equals the input. The input is not modified.
func MergeProgress(lessons []LessonProgress, coord LessonCoordinate, kind ProgressKind) []LessonProgress {
	if lessons == nil {
		return nil
	}
	out := make([]LessonProgress, len(lessons))
	copy(out, lessons)

	for i := range out {
		if out[i].Coordinate() != coord {
			continue
		}
		switch kind {
		case ProgressInteractive:
			out[i].CompletedInteractive = true
		case ProgressGame:
			out[i].CompletedGame = true
		}
	}
	return out
}
