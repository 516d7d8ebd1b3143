// Package review persists per-conversation review marks in sqlite.
package review

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS marks (
    conversation_id TEXT PRIMARY KEY,
    marked_at       TEXT NOT NULL
);
`

const timeLayout = "2006-01-02T15:04:05Z"

// Store persists review marks in a sqlite file.
type Store struct {
	db *sql.DB
}

// Open creates the database file and schema if needed.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Toggle flips the mark on conversationID and reports whether it is now marked.
func (s *Store) Toggle(ctx context.Context, conversationID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM marks WHERE conversation_id = ?", conversationID)
	if err != nil {
		return false, fmt.Errorf("unmark %s: %w", conversationID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	marked := n == 0
	if marked {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO marks (conversation_id, marked_at) VALUES (?, ?)",
			conversationID, time.Now().UTC().Format(timeLayout),
		)
		if err != nil {
			return false, fmt.Errorf("mark %s: %w", conversationID, err)
		}
	}
	return marked, tx.Commit()
}

// Marked returns every marked conversation id with the time it was marked.
func (s *Store) Marked(ctx context.Context) (map[string]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT conversation_id, marked_at FROM marks")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	marks := make(map[string]time.Time)
	for rows.Next() {
		var id, at string
		if err := rows.Scan(&id, &at); err != nil {
			return nil, err
		}
		ts, _ := time.Parse(timeLayout, at)
		marks[id] = ts
	}
	return marks, rows.Err()
}
