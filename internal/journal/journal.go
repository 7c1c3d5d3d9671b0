// Package journal records tool invocations in a local SQLite database.
//
// A nil *Journal is valid and records nothing, so callers never branch on whether the journal
// is configured.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"
)

var (
	ErrEmptyPath = errors.New("empty journal path")
	ErrClosed    = errors.New("journal closed")
)

// timeLayout has fixed width so started_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Entry is one tool invocation.
type Entry struct {
	ID        string        `json:"id"`
	Tool      string        `json:"tool"`
	AgentID   string        `json:"agent_id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	OK        bool          `json:"ok"`
	Status    int           `json:"status,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// Journal is an append-only invocation log.
type Journal struct {
	db     *sql.DB
	once   sync.Once
	closed atomic.Bool
}

// Open creates or opens the database at path and ensures the schema exists.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal pragmas: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS invocations (
			id TEXT PRIMARY KEY,
			tool TEXT NOT NULL,
			agent_id TEXT NOT NULL,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			ok INTEGER NOT NULL,
			status INTEGER NOT NULL,
			error TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_invocations_started ON invocations(started_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Record inserts e.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if j == nil {
		return nil
	}
	if j.closed.Load() {
		return ErrClosed
	}
	ok := 0
	if e.OK {
		ok = 1
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO invocations (id, tool, agent_id, started_at, duration_ms, ok, status, error) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Tool, e.AgentID,
		e.StartedAt.UTC().Format(timeLayout),
		e.Duration.Milliseconds(),
		ok, e.Status, e.Error,
	)
	if err != nil {
		return fmt.Errorf("record invocation %s: %w", e.ID, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if j == nil {
		return nil, nil
	}
	if j.closed.Load() {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT id, tool, agent_id, started_at, duration_ms, ok, status, error FROM invocations ORDER BY started_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			startedAt string
			ms        int64
			ok        int
		)
		if err := rows.Scan(&e.ID, &e.Tool, &e.AgentID, &startedAt, &ms, &ok, &e.Status, &e.Error); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		e.StartedAt, _ = time.Parse(timeLayout, startedAt)
		e.Duration = time.Duration(ms) * time.Millisecond
		e.OK = ok == 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read invocations: %w", err)
	}
	return entries, nil
}

// Close releases the database. It is safe to call more than once.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	var err error
	j.once.Do(func() {
		j.closed.Store(true)
		err = j.db.Close()
	})
	return err
}
