// Package main provides the CLI entrypoint for keycoach.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/edanko/keycoach/internal/config"
	"github.com/edanko/keycoach/internal/engine"
	"github.com/edanko/keycoach/internal/generator"
	"github.com/edanko/keycoach/internal/model"
	"github.com/edanko/keycoach/internal/stats"
	"github.com/edanko/keycoach/internal/statsui"
	"github.com/edanko/keycoach/internal/store"
	"github.com/edanko/keycoach/internal/tui"
	"github.com/edanko/keycoach/internal/wordlist"
)

const (
	defaultTextLen     = 200
	defaultFocusWeak   = true
	defaultWeakWindow  = 20
	defaultCurveWindow = 20
)

var (
	practiceLen        int
	practiceFocusWeak  bool
	practiceWeakWindow int
	practiceWordList   string
	practiceLevel      string

	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsWeakWindow  int
	statsPlain       bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keycoach",
		Short:         "Adaptive terminal typing tutor",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().IntVar(&practiceLen, "length", defaultTextLen, "practice text length in characters")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", defaultFocusWeak, "bias practice toward error-prone keys")
	rootCmd.Flags().IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions for the weak-key histogram")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", "", "custom word list file (one word per line)")
	rootCmd.Flags().StringVar(&practiceLevel, "level", "", "set and save the difficulty level (beginner|intermediate|advanced|master)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newBadgesCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "length", &practiceLen, fileCfg.Practice.Length)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, fileCfg.Practice.FocusWeak)
	applyIntConfig(cmd, "weak-window", &practiceWeakWindow, fileCfg.Practice.WeakWindow)
	applyStringConfig(cmd, "wordlist", &practiceWordList, fileCfg.Practice.WordList)
	applyStringConfig(cmd, "level", &practiceLevel, fileCfg.Practice.Level)

	cfg := model.Config{
		TextLen:      practiceLen,
		FocusWeak:    practiceFocusWeak,
		WeakWindow:   practiceWeakWindow,
		WordListPath: practiceWordList,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	words, err := loadWords(cfg.WordListPath)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	progress, err := st.LoadProgress(ctx)
	if err != nil {
		logErrf("failed to load progress, starting fresh: %v\n", err)
		progress = model.Progress{}
	}
	if practiceLevel != "" {
		level, ok := model.ParseLevel(practiceLevel)
		if !ok {
			return fmt.Errorf("unknown level %q", practiceLevel)
		}
		progress.Level = level
		if err := st.SaveProgress(ctx, progress); err != nil {
			return fmt.Errorf("failed to save level: %w", err)
		}
	}

	earned := map[string]bool{}
	earnedList, err := st.EarnedBadges(ctx)
	if err != nil {
		logErrf("failed to load badges: %v\n", err)
	}
	for _, e := range earnedList {
		earned[e.ID] = true
	}

	hist := map[rune]int{}
	if cfg.FocusWeak {
		keyErrors, err := st.KeyErrorCounts(ctx, cfg.WeakWindow)
		if err != nil {
			logErrf("failed to load weak keys: %v\n", err)
		} else {
			hist = stats.HistogramFromCounts(keyErrors)
		}
		if len(hist) == 0 {
			logErrln("no error history yet; using the random generator")
		}
	}

	gen := generator.New(words)
	practiceModel := tui.NewModel(cfg, st, gen, progress, earned, hist)
	program := tea.NewProgram(practiceModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func loadWords(path string) ([]string, error) {
	if path == "" {
		return wordlist.Common, nil
	}
	words, err := wordlist.LoadWords(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	return words, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show progress and learning curves",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().IntVar(&statsWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions for the weak-key table")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain-text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Since:      sinceTime,
		Last:       statsLast,
		CurveWin:   statsCurveWindow,
		WeakWindow: statsWeakWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return report.Render(cmd.OutOrStdout(), stats.TerminalWidth(), cfg.CurveWin)
	}

	statsModel := statsui.NewModel(st, cfg)
	program := tea.NewProgram(statsModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newBadgesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "List badges and earned state",
		Args:  cobra.NoArgs,
		RunE:  runBadgesCmd,
	}
}

func runBadgesCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	earnedList, err := st.EarnedBadges(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load badges: %w", err)
	}
	earnedAt := map[string]time.Time{}
	for _, e := range earnedList {
		earnedAt[e.ID] = e.EarnedAt
	}

	rows := make([][]string, 0, len(engine.Catalog))
	for _, b := range engine.Catalog {
		status := "-"
		if at, ok := earnedAt[b.ID]; ok {
			status = at.Format("2006-01-02")
		}
		rows = append(rows, []string{b.Name, b.Description, status})
	}
	for _, line := range stats.FormatTable([]string{"Badge", "Description", "Earned"}, rows, nil) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keycoach configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# length = %d           # Practice text length in characters
# focus-weak = %t      # Bias practice toward error-prone keys
# weak-window = %d      # Number of recent sessions for the weak-key histogram
# wordlist = ""          # Custom word list file (one lowercase word per line)
# level = "beginner"     # Difficulty level to save on start
`,
		defaultTextLen,
		defaultFocusWeak,
		defaultWeakWindow,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.TextLen <= 0 {
		return fmt.Errorf("--length must be > 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
