package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrSessionNotFound is returned when no stored run has the given id.
var ErrSessionNotFound = errors.New("session not found")

// RecordSession stores a finished run. A run is stored at most once; the
// returned bool is false when run_id was already present.
func (s *Store) RecordSession(sess Session) (bool, error) {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO sessions (run_id, message, started_at, ended_at, planned, elapsed, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.RunID, sess.Message,
		sess.StartedAt.UTC().Format(time.RFC3339),
		sess.EndedAt.UTC().Format(time.RFC3339),
		sess.Planned, sess.Elapsed, boolToInt(sess.Completed),
	)
	if err != nil {
		return false, fmt.Errorf("record session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("record session: %w", err)
	}
	return n > 0, nil
}

// GetSession looks up one run by its run id.
func (s *Store) GetSession(runID string) (*Session, error) {
	sess := &Session{}
	var startedAt, endedAt, createdAt string
	var completed int

	err := s.db.QueryRow(
		`SELECT id, run_id, message, started_at, ended_at, planned, elapsed, completed, created_at
		 FROM sessions WHERE run_id = ?`, runID,
	).Scan(&sess.ID, &sess.RunID, &sess.Message, &startedAt, &endedAt, &sess.Planned, &sess.Elapsed, &completed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", runID, err)
	}
	sess.Completed = completed == 1
	sess.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	sess.EndedAt, _ = time.Parse(time.RFC3339, endedAt)
	sess.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return sess, nil
}

func (s *Store) ListSessions(f SessionFilter) ([]Session, error) {
	query := `SELECT id, run_id, message, started_at, ended_at, planned, elapsed, completed, created_at FROM sessions WHERE 1=1`
	var args []any

	if f.From != nil {
		query += ` AND started_at >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		query += ` AND started_at < ?`
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	if f.CompletedOnly {
		query += ` AND completed = 1`
	}
	query += ` ORDER BY started_at DESC, id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var startedAt, endedAt, createdAt string
		var completed int
		if err := rows.Scan(&sess.ID, &sess.RunID, &sess.Message, &startedAt, &endedAt, &sess.Planned, &sess.Elapsed, &completed, &createdAt); err != nil {
			return nil, err
		}
		sess.Completed = completed == 1
		sess.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		sess.EndedAt, _ = time.Parse(time.RFC3339, endedAt)
		sess.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// GetDailySummary aggregates elapsed focus time per UTC day in [from, to).
func (s *Store) GetDailySummary(from, to time.Time) ([]DailySummary, error) {
	rows, err := s.db.Query(`
		SELECT date(started_at) AS day,
		       COALESCE(SUM(elapsed), 0), COUNT(*), COALESCE(SUM(completed), 0)
		FROM sessions
		WHERE started_at >= ? AND started_at < ?
		GROUP BY day
		ORDER BY day`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily summary: %w", err)
	}
	defer rows.Close()

	var summaries []DailySummary
	for rows.Next() {
		var ds DailySummary
		if err := rows.Scan(&ds.Date, &ds.TotalSeconds, &ds.Sessions, &ds.Completed); err != nil {
			return nil, err
		}
		summaries = append(summaries, ds)
	}
	return summaries, rows.Err()
}

func (s *Store) GetTodayTotal(now time.Time) (int64, error) {
	today := now.UTC().Format("2006-01-02")
	var total int64
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(elapsed), 0)
		FROM sessions
		WHERE date(started_at) = ?`, today,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("today total: %w", err)
	}
	return total, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
