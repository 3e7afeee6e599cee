package stats

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/edanko/keycoach/internal/engine"
	"github.com/edanko/keycoach/internal/model"
	"github.com/edanko/keycoach/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Progress  model.Progress
	Sessions  []model.SessionRow
	KeyErrors []model.KeyErrorCount
	Earned    []model.EarnedBadge
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	progress, err := st.LoadProgress(ctx)
	if err != nil {
		return Report{}, err
	}
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	keyErrors, err := st.KeyErrorCounts(ctx, cfg.WeakWindow)
	if err != nil {
		return Report{}, err
	}
	earned, err := st.EarnedBadges(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Progress:  progress,
		Sessions:  sessions,
		KeyErrors: SortKeyErrors(keyErrors),
		Earned:    earned,
	}, nil
}

// TerminalWidth probes stdout for its width, falling back to 80 columns.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// Render writes the plain-text report sized to the given width.
func (r Report) Render(w io.Writer, width int, curveWindow int) error {
	if len(r.Sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded yet.")
		return err
	}
	if err := r.renderSummary(w); err != nil {
		return err
	}
	if err := r.renderCurves(w, width, curveWindow); err != nil {
		return err
	}
	if err := r.renderWeakKeys(w); err != nil {
		return err
	}
	return r.renderBadges(w)
}

func (r Report) renderSummary(w io.Writer) error {
	var totalWPM, totalAcc, bestWPM float64
	for _, s := range r.Sessions {
		wpm, _, acc := SessionMetrics(s.Correct, s.Total, s.DurationMs)
		totalWPM += wpm
		totalAcc += acc
		if wpm > bestWPM {
			bestWPM = wpm
		}
	}
	count := float64(len(r.Sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d (lifetime %d)", len(r.Sessions), r.Progress.SessionCount),
		fmt.Sprintf("Level: %s", r.Progress.Level),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Best WPM: %.2f (record %d)", bestWPM, r.Progress.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%% (record %d%%)", (totalAcc/count)*100, r.Progress.BestAccuracy),
		fmt.Sprintf("Badges: %d/%d", len(r.Earned), len(engine.Catalog)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (r Report) renderCurves(w io.Writer, width, window int) error {
	wpms := make([]float64, len(r.Sessions))
	accs := make([]float64, len(r.Sessions))
	for i, s := range r.Sessions {
		wpm, _, acc := SessionMetrics(s.Correct, s.Total, s.DurationMs)
		wpms[i] = wpm
		accs[i] = acc * 100
	}
	wpms = fitWidth(MovingAverage(wpms, window), width-12)
	accs = fitWidth(MovingAverage(accs, window), width-12)

	if _, err := fmt.Fprintln(w, "Learning Curves"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "WPM      [%s]\n", Sparkline(wpms)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Accuracy [%s]\n", Sparkline(accs)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func fitWidth(values []float64, max int) []float64 {
	if max <= 0 || len(values) <= max {
		return values
	}
	return values[len(values)-max:]
}

func (r Report) renderWeakKeys(w io.Writer) error {
	if len(r.KeyErrors) == 0 {
		_, err := fmt.Fprintln(w, "No key errors recorded.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Weak Keys (Windowed)"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(r.KeyErrors))
	for _, agg := range r.KeyErrors {
		key := agg.Key
		if key == " " {
			key = "<space>"
		}
		rows = append(rows, []string{key, fmt.Sprintf("%d", agg.Count)})
	}
	for _, line := range FormatTable([]string{"Key", "Errors"}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func (r Report) renderBadges(w io.Writer) error {
	earnedAt := make(map[string]time.Time, len(r.Earned))
	for _, e := range r.Earned {
		earnedAt[e.ID] = e.EarnedAt
	}
	if _, err := fmt.Fprintln(w, "Badges"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(engine.Catalog))
	for _, b := range engine.Catalog {
		status := "-"
		if at, ok := earnedAt[b.ID]; ok {
			status = at.Format("2006-01-02")
		}
		rows = append(rows, []string{b.Name, b.Description, status})
	}
	for _, line := range FormatTable([]string{"Badge", "Description", "Earned"}, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
