// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/edanko/keycoach/internal/engine"
	"github.com/edanko/keycoach/internal/generator"
	"github.com/edanko/keycoach/internal/model"
	"github.com/edanko/keycoach/internal/store"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	bannerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA874"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea practice UI around the engine.
type Model struct {
	cfg      model.Config
	store    *store.Store
	gen      *generator.Generator
	recorder *engine.Recorder
	feedback *engine.FeedbackSelector

	progress model.Progress
	earned   map[string]bool
	hist     map[rune]int

	width  int
	height int

	targetRunes []rune
	inputRunes  []rune

	prevWPM int
	banner  string
}

// NewModel constructs the practice model. The earned set and histogram come
// from the store; the model owns them for the lifetime of the program and
// writes changes back at every session end.
func NewModel(cfg model.Config, st *store.Store, gen *generator.Generator, progress model.Progress, earned map[string]bool, hist map[rune]int) *Model {
	if earned == nil {
		earned = map[string]bool{}
	}
	if hist == nil {
		hist = map[rune]int{}
	}
	m := &Model{
		cfg:      cfg,
		store:    st,
		gen:      gen,
		recorder: engine.NewRecorder(),
		feedback: engine.NewFeedbackSelector(),
		progress: progress,
		earned:   earned,
		hist:     hist,
		prevWPM:  progress.BestWPM,
	}
	m.resetSession()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyBackspace, tea.KeyDelete:
			m.handleBackspace()
			return m, nil
		case tea.KeySpace:
			m.handleRunes([]rune{' '})
			return m, nil
		case tea.KeyRunes:
			m.handleRunes(msg.Runes)
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.targetRunes) == 0 {
		return ""
	}
	cursorIndex := -1
	if len(m.inputRunes) < len(m.targetRunes) {
		cursorIndex = len(m.inputRunes)
	}
	glyphs := buildGlyphs(m.targetRunes, m.inputRunes, cursorIndex)
	if m.width == 0 || m.height == 0 {
		return renderGlyphs(glyphs)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapGlyphs(glyphs, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)

	footer := m.renderFooter()
	banner := ""
	if m.banner != "" {
		banner = bannerStyle.Render(m.banner)
	}
	extra := 0
	if footer != "" {
		extra++
	}
	if banner != "" {
		extra++
	}
	if extra == 0 || m.height < extra+2 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-extra, lipgloss.Center, lipgloss.Center, content)
	var b strings.Builder
	b.WriteString(body)
	if banner != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, banner))
	}
	if footer != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer))
	}
	return b.String()
}

func (m *Model) handleBackspace() {
	if len(m.inputRunes) == 0 {
		return
	}
	m.inputRunes = m.inputRunes[:len(m.inputRunes)-1]
}

func (m *Model) handleRunes(runes []rune) {
	for _, r := range runes {
		if len(m.inputRunes) >= len(m.targetRunes) {
			return
		}
		pos := len(m.inputRunes)
		target := m.targetRunes[pos]
		m.inputRunes = append(m.inputRunes, r)
		m.recorder.RecordKeystroke(r, r == target, target)
		if len(m.inputRunes) == len(m.targetRunes) {
			m.finishSession()
			m.resetSession()
		}
	}
}

func (m *Model) renderFooter() string {
	progress := 0
	if len(m.targetRunes) > 0 {
		progress = int(float64(len(m.inputRunes)) / float64(len(m.targetRunes)) * 100)
	}
	live := m.recorder.CurrentMetrics()
	segments := []string{
		fmt.Sprintf("Progress %d%%", progress),
		fmt.Sprintf("%d WPM · %d%%", live.WPM, live.Accuracy),
		fmt.Sprintf("Level %s", m.progress.Level),
		fmt.Sprintf("Best %d WPM", m.progress.BestWPM),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) finishSession() {
	sum := m.recorder.Finish()
	sum.Level = m.progress.Level
	metrics := sum.Metrics

	improvement := float64(metrics.WPM - m.prevWPM)
	feedback := m.feedback.Message(metrics, improvement)
	m.prevWPM = metrics.WPM

	m.progress.SessionCount++
	m.progress.LessonIndex++
	if metrics.WPM > m.progress.BestWPM {
		m.progress.BestWPM = metrics.WPM
	}
	if metrics.Accuracy > m.progress.BestAccuracy {
		m.progress.BestAccuracy = metrics.Accuracy
	}
	newBadges := engine.EvaluateBadges(metrics, m.progress.Level, m.progress.SessionCount, m.earned)
	suggested := engine.AdjustDifficulty(metrics.Accuracy, m.progress.Level)

	for k, v := range sum.KeyErrors {
		m.hist[k] += v
	}

	ctx := context.Background()
	if _, err := m.store.InsertSession(ctx, sum); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
	if err := m.store.SaveProgress(ctx, m.progress); err != nil {
		logErrf("failed to save progress: %v\n", err)
	}
	if err := m.store.EarnBadges(ctx, newBadges, sum.EndedAt); err != nil {
		logErrf("failed to save badges: %v\n", err)
	}

	m.banner = m.buildBanner(feedback, newBadges, suggested)
}

func (m *Model) buildBanner(feedback string, newBadges []string, suggested model.Level) string {
	parts := []string{feedback}
	for _, id := range newBadges {
		if b, ok := engine.BadgeByID(id); ok {
			parts = append(parts, fmt.Sprintf("Unlocked: %s", b.Name))
		}
	}
	// The adjusted level is advisory; applying it is up to the user.
	if suggested != m.progress.Level {
		parts = append(parts, fmt.Sprintf("Suggested level: %s", suggested))
	}
	return strings.Join(parts, "  ·  ")
}

func (m *Model) resetSession() {
	m.recorder.Reset()
	m.inputRunes = nil
	m.targetRunes = []rune(m.generateText())
}

func (m *Model) generateText() string {
	if m.cfg.FocusWeak && len(m.hist) > 0 {
		return m.gen.SpacedRepetition(m.hist, m.cfg.TextLen)
	}
	return m.gen.Random(m.cfg.TextLen)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
