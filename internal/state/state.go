package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    addr       TEXT NOT NULL,
    command    TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS history_addr ON history(addr, id);
`

// Store persists command history per server address so a new client run
// starts with the previous session's history preloaded.
type Store struct {
	db *sql.DB
}

// Open creates or opens the state database at
// $XDG_STATE_HOME/remmux/state.db.
func Open() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateHome, "remmux")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return OpenPath(filepath.Join(dir, "state.db"))
}

// OpenPath opens the state database at an explicit path.
func OpenPath(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL mode for safe concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one submitted command for a server address.
func (s *Store) Append(addr, command string) error {
	_, err := s.db.Exec(
		"INSERT INTO history (addr, command) VALUES (?, ?)",
		addr, command,
	)
	return err
}

// Recent returns up to limit commands for addr, oldest first, so they can
// seed a session's in-memory history directly.
func (s *Store) Recent(addr string, limit int) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT command FROM (
			SELECT id, command FROM history
			WHERE addr = ?
			ORDER BY id DESC
			LIMIT ?
		) ORDER BY id ASC
	`, addr, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var cmd string
		if err := rows.Scan(&cmd); err != nil {
			return nil, err
		}
		result = append(result, cmd)
	}
	return result, rows.Err()
}

// Entry is one persisted history row, as listed by the history command.
type Entry struct {
	Addr      string
	Command   string
	CreatedAt time.Time
}

// List returns the most recent entries across all addresses, newest
// first.
func (s *Store) List(limit int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT addr, command, created_at FROM history
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.Addr, &e.Command, &created); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", created)
		result = append(result, e)
	}
	return result, rows.Err()
}
