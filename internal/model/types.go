// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	TextLen      int
	FocusWeak    bool
	WeakWindow   int
	WordListPath string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Since      *time.Time
	Last       int
	CurveWin   int
	WeakWindow int
}

// Level is an ordered difficulty level.
type Level int

// Difficulty levels in ascending order.
const (
	Beginner Level = iota
	Intermediate
	Advanced
	Master
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case Beginner:
		return "beginner"
	case Intermediate:
		return "intermediate"
	case Advanced:
		return "advanced"
	case Master:
		return "master"
	default:
		return "beginner"
	}
}

// ParseLevel maps a level name to a Level, defaulting to beginner.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "beginner":
		return Beginner, true
	case "intermediate":
		return Intermediate, true
	case "advanced":
		return Advanced, true
	case "master":
		return Master, true
	default:
		return Beginner, false
	}
}

// Metrics is an immutable snapshot derived from a running or finished session.
type Metrics struct {
	WPM               int
	Accuracy          int
	AvgReactionMs     float64
	Errors            int
	TotalKeystrokes   int
	CorrectKeystrokes int
}

// SessionSummary captures a completed typing session.
type SessionSummary struct {
	StartedAt      time.Time
	EndedAt        time.Time
	Level          Level
	Metrics        Metrics
	ElapsedMs      int64
	ElapsedSeconds float64
	KeyErrors      map[rune]int
}

// SessionRow is a stored session loaded back for reporting.
type SessionRow struct {
	SessionID  int64
	EndedAt    time.Time
	Level      Level
	WPM        int
	Accuracy   int
	Correct    int
	Total      int
	DurationMs int64
}

// Progress is the persistent cross-session record.
type Progress struct {
	BestWPM      int
	BestAccuracy int
	SessionCount int
	Level        Level
	LessonIndex  int
}

// Badge is a static achievement catalog entry.
type Badge struct {
	ID          string
	Name        string
	Description string
}

// EarnedBadge pairs a badge identifier with when it was unlocked.
type EarnedBadge struct {
	ID       string
	EarnedAt time.Time
}

// KeyErrorCount aggregates errors for one target key.
type KeyErrorCount struct {
	Key   string
	Count int
}
