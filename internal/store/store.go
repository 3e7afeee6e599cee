// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edanko/keycoach/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for sessions, progress, and badges.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			level TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL,
			avg_reaction_ms REAL NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_key_errors (
			session_id INTEGER NOT NULL,
			key TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (session_id, key)
		);`,
		`CREATE TABLE IF NOT EXISTS progress (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			best_wpm INTEGER NOT NULL,
			best_accuracy INTEGER NOT NULL,
			session_count INTEGER NOT NULL,
			level TEXT NOT NULL,
			lesson_index INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS badges (
			id TEXT PRIMARY KEY,
			earned_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_session_key_errors_key ON session_key_errors(key);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed session and its per-key error counts.
func (s *Store) InsertSession(ctx context.Context, sum model.SessionSummary) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, level, wpm, accuracy, correct, total, avg_reaction_ms, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.StartedAt.Format(time.RFC3339Nano),
		sum.EndedAt.Format(time.RFC3339Nano),
		sum.Level.String(),
		sum.Metrics.WPM,
		sum.Metrics.Accuracy,
		sum.Metrics.CorrectKeystrokes,
		sum.Metrics.TotalKeystrokes,
		sum.Metrics.AvgReactionMs,
		sum.ElapsedMs,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(sum.KeyErrors) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO session_key_errors (session_id, key, count) VALUES (?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for key, count := range sum.KeyErrors {
			if _, err := stmt.ExecContext(ctx, id, string(key), count); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// KeyErrorCounts aggregates per-key errors over the most recent sessions.
// A non-positive window aggregates over all sessions.
func (s *Store) KeyErrorCounts(ctx context.Context, window int) ([]model.KeyErrorCount, error) {
	limit := window
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded.
	}
	query := `WITH recent_sessions AS (
		SELECT id FROM sessions
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT ke.key, SUM(ke.count) AS count
	FROM session_key_errors ke
	JOIN recent_sessions r ON r.id = ke.session_id
	GROUP BY ke.key`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.KeyErrorCount
	for rows.Next() {
		var agg model.KeyErrorCount
		if err := rows.Scan(&agg.Key, &agg.Count); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListSessions returns stored sessions filtered by stats config, oldest first.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionRow, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := `SELECT id, ended_at, level, wpm, accuracy, correct, total, duration_ms
		FROM sessions
		WHERE ` + strings.Join(clauses, " AND ") + `
		ORDER BY ended_at ASC`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionRow
	for rows.Next() {
		var row model.SessionRow
		var endedAt, level string
		if err := rows.Scan(&row.SessionID, &endedAt, &level, &row.WPM, &row.Accuracy, &row.Correct, &row.Total, &row.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		row.EndedAt = parsed
		row.Level, _ = model.ParseLevel(level)
		sessions = append(sessions, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// LoadProgress reads the persistent progress record. A missing or malformed
// row degrades to zero-value defaults rather than failing.
func (s *Store) LoadProgress(ctx context.Context) (model.Progress, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT best_wpm, best_accuracy, session_count, level, lesson_index FROM progress WHERE id = 1`)
	var p model.Progress
	var level string
	if err := row.Scan(&p.BestWPM, &p.BestAccuracy, &p.SessionCount, &level, &p.LessonIndex); err != nil {
		if err == sql.ErrNoRows {
			return model.Progress{}, nil
		}
		return model.Progress{}, err
	}
	// Unknown level names fall back to beginner.
	p.Level, _ = model.ParseLevel(level)
	if p.BestWPM < 0 {
		p.BestWPM = 0
	}
	if p.BestAccuracy < 0 || p.BestAccuracy > 100 {
		p.BestAccuracy = 0
	}
	if p.SessionCount < 0 {
		p.SessionCount = 0
	}
	if p.LessonIndex < 0 {
		p.LessonIndex = 0
	}
	return p, nil
}

// SaveProgress upserts the single progress row.
func (s *Store) SaveProgress(ctx context.Context, p model.Progress) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress (id, best_wpm, best_accuracy, session_count, level, lesson_index)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			best_wpm = excluded.best_wpm,
			best_accuracy = excluded.best_accuracy,
			session_count = excluded.session_count,
			level = excluded.level,
			lesson_index = excluded.lesson_index`,
		p.BestWPM, p.BestAccuracy, p.SessionCount, p.Level.String(), p.LessonIndex)
	return err
}

// EarnBadges records newly unlocked badges. Already-earned ids are ignored.
func (s *Store) EarnBadges(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	for _, id := range ids {
		if _, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO badges (id, earned_at) VALUES (?, ?)`,
			id, at.Format(time.RFC3339Nano)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// EarnedBadges lists earned badges in unlock order.
func (s *Store) EarnedBadges(ctx context.Context) ([]model.EarnedBadge, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, earned_at FROM badges ORDER BY earned_at ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var earned []model.EarnedBadge
	for rows.Next() {
		var e model.EarnedBadge
		var at string
		if err := rows.Scan(&e.ID, &at); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, err
		}
		e.EarnedAt = parsed
		earned = append(earned, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return earned, nil
}
