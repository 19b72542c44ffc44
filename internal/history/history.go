// Package history records every translated command in a SQLite database
// at ~/.uwu/history.db.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const HistoryFileName = "history.db"

// Entry is a single translated request
type Entry struct {
	ID          int64
	Timestamp   time.Time
	Request     string
	Command     string
	Executed    bool
	Refinements []string
}

// Store is a SQLite-backed history store
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// GetHistoryPath returns the path to the history database
func GetHistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".uwu", HistoryFileName), nil
}

// Open opens (creating if necessary) the history store at the default path.
func Open() (*Store, error) {
	path, err := GetHistoryPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(path)
}

// OpenPath opens a history store at an explicit path.
func OpenPath(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database schema
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		request TEXT NOT NULL,
		command TEXT NOT NULL,
		executed INTEGER NOT NULL,
		refinements TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_created_at ON entries(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Add records an entry.
func (s *Store) Add(ctx context.Context, request, command string, executed bool, refinements []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	executedInt := 0
	if executed {
		executedInt = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (created_at, request, command, executed, refinements)
		VALUES (?, ?, ?, ?, ?)
	`, time.Now().Format(time.RFC3339), request, command, executedInt, strings.Join(refinements, "\n"))
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// Recent returns the n most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, request, command, executed, refinements
		FROM entries
		ORDER BY id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var createdAt, refinements string
		var executed int

		if err := rows.Scan(&entry.ID, &createdAt, &entry.Request, &entry.Command, &executed, &refinements); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		entry.Timestamp, _ = time.Parse(time.RFC3339, createdAt)
		entry.Executed = executed != 0
		if refinements != "" {
			entry.Refinements = strings.Split(refinements, "\n")
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Count returns the number of stored entries
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&count); err != nil {
		return 0
	}
	return count
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
