package engine

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestRecorderEmptyMetrics(t *testing.T) {
	r := NewRecorderWithClock(newFakeClock().Now)
	m := r.CurrentMetrics()
	if m.WPM != 0 {
		t.Fatalf("expected WPM 0, got %d", m.WPM)
	}
	if m.Accuracy != 100 {
		t.Fatalf("expected accuracy 100, got %d", m.Accuracy)
	}
	if m.TotalKeystrokes != 0 || m.CorrectKeystrokes != 0 {
		t.Fatalf("expected zero counts, got %+v", m)
	}
}

func TestRecorderCountsAndAccuracy(t *testing.T) {
	clock := newFakeClock()
	r := NewRecorderWithClock(clock.Now)

	r.RecordKeystroke('a', true, 'a')
	clock.Advance(100 * time.Millisecond)
	r.RecordKeystroke('x', false, 'b')
	clock.Advance(100 * time.Millisecond)
	r.RecordKeystroke('c', true, 'c')

	m := r.CurrentMetrics()
	if m.TotalKeystrokes != 3 || m.CorrectKeystrokes != 2 {
		t.Fatalf("unexpected counts: %+v", m)
	}
	if m.Accuracy != 67 {
		t.Fatalf("expected accuracy 67, got %d", m.Accuracy)
	}
	if m.Errors != 1 {
		t.Fatalf("expected 1 error, got %d", m.Errors)
	}
	if got := r.KeyErrors()['b']; got != 1 {
		t.Fatalf("expected error charged to target 'b', got %d", got)
	}
	if m.AvgReactionMs != 100 {
		t.Fatalf("expected avg reaction 100ms, got %v", m.AvgReactionMs)
	}
}

func TestRecorderWPM(t *testing.T) {
	clock := newFakeClock()
	r := NewRecorderWithClock(clock.Now)

	// 50 correct keystrokes over 60 seconds is 10 WPM.
	r.RecordKeystroke('a', true, 'a')
	clock.Advance(60 * time.Second)
	for i := 0; i < 49; i++ {
		r.RecordKeystroke('a', true, 'a')
	}
	sum := r.Finish()
	if sum.Metrics.WPM != 10 {
		t.Fatalf("expected 10 WPM, got %d", sum.Metrics.WPM)
	}
	if sum.ElapsedMs != 60000 {
		t.Fatalf("expected 60000ms elapsed, got %d", sum.ElapsedMs)
	}
}

func TestRecorderFinishBeforeKeystroke(t *testing.T) {
	r := NewRecorderWithClock(newFakeClock().Now)
	sum := r.Finish()
	if sum.Metrics.WPM != 0 {
		t.Fatalf("expected WPM 0, got %d", sum.Metrics.WPM)
	}
	if sum.Metrics.Accuracy != 100 {
		t.Fatalf("expected accuracy 100, got %d", sum.Metrics.Accuracy)
	}
	if sum.ElapsedMs != 0 {
		t.Fatalf("expected elapsed 0, got %d", sum.ElapsedMs)
	}
}

func TestRecorderFirstKeystrokeRecordsNoInterval(t *testing.T) {
	clock := newFakeClock()
	r := NewRecorderWithClock(clock.Now)
	r.RecordKeystroke('a', true, 'a')
	if m := r.CurrentMetrics(); m.AvgReactionMs != 0 {
		t.Fatalf("expected no intervals after first keystroke, got %v", m.AvgReactionMs)
	}
}

func TestRecorderReset(t *testing.T) {
	clock := newFakeClock()
	r := NewRecorderWithClock(clock.Now)
	r.RecordKeystroke('x', false, 'a')
	clock.Advance(time.Second)
	r.RecordKeystroke('b', true, 'b')

	r.Reset()
	r.Reset() // idempotent

	m := r.CurrentMetrics()
	if m.WPM != 0 || m.Accuracy != 100 || m.TotalKeystrokes != 0 || m.CorrectKeystrokes != 0 {
		t.Fatalf("expected clean state after reset, got %+v", m)
	}
	if len(r.KeyErrors()) != 0 {
		t.Fatalf("expected empty histogram after reset")
	}
}
