// Package engine implements the adaptive performance engine: keystroke
// metrics, difficulty adaptation, feedback selection, and badge evaluation.
package engine

import (
	"math"
	"time"

	"github.com/edanko/keycoach/internal/model"
)

// Recorder accumulates keystroke counts and timing for one session.
type Recorder struct {
	clock func() time.Time

	startedAt time.Time
	endedAt   time.Time
	lastAt    time.Time

	total     int
	correct   int
	keyErrors map[rune]int
	intervals []time.Duration
}

// NewRecorder returns a Recorder using the wall clock.
func NewRecorder() *Recorder {
	return NewRecorderWithClock(time.Now)
}

// NewRecorderWithClock returns a Recorder with an injected clock.
func NewRecorderWithClock(clock func() time.Time) *Recorder {
	return &Recorder{
		clock:     clock,
		keyErrors: map[rune]int{},
	}
}

// RecordKeystroke appends one keystroke to the running session. The first
// call establishes the session start time. Incorrect keystrokes are charged
// to the target character, not the typed one.
func (r *Recorder) RecordKeystroke(typed rune, correct bool, target rune) {
	now := r.clock()
	if r.startedAt.IsZero() {
		r.startedAt = now
	} else {
		r.intervals = append(r.intervals, now.Sub(r.lastAt))
	}
	r.lastAt = now

	r.total++
	if correct {
		r.correct++
		return
	}
	r.keyErrors[target]++
}

// CurrentMetrics derives a metrics snapshot without mutating the session.
func (r *Recorder) CurrentMetrics() model.Metrics {
	var elapsed time.Duration
	if !r.startedAt.IsZero() {
		end := r.endedAt
		if end.IsZero() {
			end = r.clock()
		}
		elapsed = end.Sub(r.startedAt)
	}
	return r.metricsAt(elapsed)
}

// Finish freezes the session end time and returns the final summary.
// Finishing before any keystroke yields WPM 0, accuracy 100, elapsed 0.
func (r *Recorder) Finish() model.SessionSummary {
	if r.endedAt.IsZero() && !r.startedAt.IsZero() {
		r.endedAt = r.clock()
	}
	var elapsed time.Duration
	if !r.startedAt.IsZero() {
		elapsed = r.endedAt.Sub(r.startedAt)
	}
	errs := make(map[rune]int, len(r.keyErrors))
	for k, v := range r.keyErrors {
		errs[k] = v
	}
	return model.SessionSummary{
		StartedAt:      r.startedAt,
		EndedAt:        r.endedAt,
		Metrics:        r.metricsAt(elapsed),
		ElapsedMs:      elapsed.Milliseconds(),
		ElapsedSeconds: elapsed.Seconds(),
		KeyErrors:      errs,
	}
}

// Reset clears all session state. Safe to call at any time, idempotent.
func (r *Recorder) Reset() {
	r.startedAt = time.Time{}
	r.endedAt = time.Time{}
	r.lastAt = time.Time{}
	r.total = 0
	r.correct = 0
	r.keyErrors = map[rune]int{}
	r.intervals = nil
}

// KeyErrors returns the live per-key error histogram.
func (r *Recorder) KeyErrors() map[rune]int {
	return r.keyErrors
}

func (r *Recorder) metricsAt(elapsed time.Duration) model.Metrics {
	wpm := 0
	if secs := elapsed.Seconds(); secs > 0 {
		wpm = int(math.Round((float64(r.correct) / 5.0) / (secs / 60.0)))
	}
	accuracy := 100
	if r.total > 0 {
		accuracy = int(math.Round(100 * float64(r.correct) / float64(r.total)))
	}
	reaction := 0.0
	if len(r.intervals) > 0 {
		var sum time.Duration
		for _, d := range r.intervals {
			sum += d
		}
		reaction = float64(sum.Milliseconds()) / float64(len(r.intervals))
	}
	return model.Metrics{
		WPM:               wpm,
		Accuracy:          accuracy,
		AvgReactionMs:     reaction,
		Errors:            r.total - r.correct,
		TotalKeystrokes:   r.total,
		CorrectKeystrokes: r.correct,
	}
}
