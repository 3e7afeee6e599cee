package engine

import (
	"math/rand"
	"time"

	"github.com/edanko/keycoach/internal/model"
)

const (
	stagnantDelta    = 2
	stagnantSessions = 3
)

var criticalRemarks = []string{
	"Three sessions with no speed gain. Slow down and aim for clean accuracy instead.",
	"You've plateaued. Try a shorter text and push your pace past your comfort zone.",
	"No progress lately. Focus on your weakest keys before chasing speed again.",
	"Stuck at the same speed. Take a break, then come back and type deliberately.",
}

var encouragingRemarks = []string{
	"Excellent session! Your fingers are finding their rhythm.",
	"Great pace. Keep this up and the next level is yours.",
	"That was sharp typing. Well done.",
	"Strong improvement. Your practice is paying off.",
}

// FeedbackSelector tracks progress across sessions and picks a message.
type FeedbackSelector struct {
	rnd *rand.Rand

	sessionCount int
	stagnant     int
	lastWPM      int
}

// NewFeedbackSelector returns a selector seeded with the current time.
func NewFeedbackSelector() *FeedbackSelector {
	return NewFeedbackSelectorWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewFeedbackSelectorWithRand returns a selector with an injected source.
func NewFeedbackSelectorWithRand(rnd *rand.Rand) *FeedbackSelector {
	return &FeedbackSelector{rnd: rnd}
}

// Message records the session outcome and returns a feedback message.
// Stagnation (three sessions in a row with WPM change under 2) takes
// precedence over the encouragement and static branches.
func (f *FeedbackSelector) Message(m model.Metrics, improvement float64) string {
	f.sessionCount++

	delta := m.WPM - f.lastWPM
	if delta < 0 {
		delta = -delta
	}
	if delta < stagnantDelta {
		f.stagnant++
	} else {
		f.stagnant = 0
	}
	f.lastWPM = m.WPM

	if f.stagnant >= stagnantSessions {
		f.stagnant = 0
		return criticalRemarks[f.rnd.Intn(len(criticalRemarks))]
	}
	if m.Accuracy >= 90 || improvement > 5 {
		return encouragingRemarks[f.rnd.Intn(len(encouragingRemarks))]
	}
	switch {
	case m.Accuracy >= 85:
		return "Solid accuracy. Push your speed a little next round."
	case m.Accuracy >= 70:
		return "Decent run. Watch the keys you keep missing."
	default:
		return "Accuracy first, speed later. Slow down and hit the right keys."
	}
}

// SessionCount returns how many sessions the selector has scored.
func (f *FeedbackSelector) SessionCount() int {
	return f.sessionCount
}
