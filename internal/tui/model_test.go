package tui

import (
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/edanko/keycoach/internal/generator"
	"github.com/edanko/keycoach/internal/model"
	"github.com/edanko/keycoach/internal/store"
)

func newTestModel(t *testing.T, cfg model.Config) (*Model, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "keycoach.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	gen := generator.NewWithRand([]string{"abc", "def"}, rand.New(rand.NewSource(7)))
	return NewModel(cfg, st, gen, model.Progress{}, nil, nil), st
}

func typeRunes(m *Model, text []rune) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestSessionCompletionPersists(t *testing.T) {
	m, st := newTestModel(t, model.Config{TextLen: 11, WeakWindow: 10})
	target := append([]rune(nil), m.targetRunes...)

	typeRunes(m, target)

	sessions, err := st.ListSessions(context.Background(), model.StatsConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 persisted session, got %d", len(sessions))
	}
	if m.progress.SessionCount != 1 {
		t.Fatalf("expected session count 1, got %d", m.progress.SessionCount)
	}
	if m.banner == "" {
		t.Fatalf("expected a feedback banner after session end")
	}
	if !m.earned["first-lesson"] {
		t.Fatalf("expected first-lesson badge after first session")
	}
	if len(m.inputRunes) != 0 {
		t.Fatalf("expected input cleared for next session")
	}
	if len(m.targetRunes) != 11 {
		t.Fatalf("expected fresh 11-char target, got %d", len(m.targetRunes))
	}
}

func TestMistypesFeedHistogram(t *testing.T) {
	m, _ := newTestModel(t, model.Config{TextLen: 11, FocusWeak: true})
	target := append([]rune(nil), m.targetRunes...)

	// Mistype every character, then correct it with backspace.
	for _, r := range target {
		wrong := 'z'
		if r == 'z' {
			wrong = 'y'
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{wrong}})
		m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if len(m.hist) == 0 {
		t.Fatalf("expected merged error histogram after session")
	}
	total := 0
	for _, c := range m.hist {
		total += c
	}
	if total != len(target) {
		t.Fatalf("expected %d recorded errors, got %d", len(target), total)
	}
}

func TestBackspaceOnEmptyInput(t *testing.T) {
	m, _ := newTestModel(t, model.Config{TextLen: 11})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if len(m.inputRunes) != 0 {
		t.Fatalf("expected input to stay empty")
	}
}

func TestRenderFooterSegments(t *testing.T) {
	m, _ := newTestModel(t, model.Config{TextLen: 11})
	m.progress.BestWPM = 42
	out := m.renderFooter()
	for _, want := range []string{"Progress 0%", "Level beginner", "Best 42 WPM"} {
		if !strings.Contains(out, want) {
			t.Fatalf("footer missing %q: %s", want, out)
		}
	}
}
