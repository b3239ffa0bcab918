package trace

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS calls (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id  TEXT NOT NULL,
	method      TEXT NOT NULL,
	url         TEXT NOT NULL,
	status_code INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMP NOT NULL
)`

// HistorySink persists call events to a SQLite call-history database.
type HistorySink struct {
	db *sql.DB
}

// Call is one persisted history row.
type Call struct {
	ID         int64
	RequestID  string
	Method     string
	URL        string
	StatusCode int
	DurationMs int64
	Error      string
	CreatedAt  time.Time
}

// NewHistorySink opens (or creates) the history database at path.
func NewHistorySink(path string) (*HistorySink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if _, err := db.ExecContext(ctx, historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &HistorySink{db: db}, nil
}

// Record inserts the event. A failed insert never fails the call that
// produced the event.
func (h *HistorySink) Record(event Event) {
	errText := ""
	if event.Err != nil {
		errText = event.Err.Error()
	}
	_, _ = h.db.Exec(
		`INSERT INTO calls (request_id, method, url, status_code, duration_ms, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.RequestID, event.Method, event.URL, event.StatusCode,
		event.Duration.Milliseconds(), errText, event.Time.UTC(),
	)
}

// List returns the most recent calls, newest first.
func (h *HistorySink) List(limit int) ([]Call, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := h.db.Query(
		`SELECT id, request_id, method, url, status_code, duration_ms, error, created_at
		 FROM calls ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history query failed: %w", err)
	}
	defer rows.Close()

	var calls []Call
	for rows.Next() {
		var c Call
		if err := rows.Scan(&c.ID, &c.RequestID, &c.Method, &c.URL,
			&c.StatusCode, &c.DurationMs, &c.Error, &c.CreatedAt); err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

// Clear removes all persisted calls.
func (h *HistorySink) Clear() error {
	_, err := h.db.Exec(`DELETE FROM calls`)
	return err
}

// Close closes the history database.
func (h *HistorySink) Close() error {
	return h.db.Close()
}
