package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"
)

// sqliteKV keeps each key in a kv table row. SQLite serializes writers
// across processes on its own, which makes it the safer backend when the
// callback handlers run out-of-process.
type sqliteKV struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the SQLite state database at the given path.
func OpenSQLite(path string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}

	schema := `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return newStore(&sqliteKV{db: db}, log), nil
}

func (s *sqliteKV) get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *sqliteKV) set(key string, value []byte) error {
	_, err := s.db.Exec(`
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	return err
}

func (s *sqliteKV) touch() error {
	_, err := s.db.Exec(`
INSERT INTO kv (key, value, updated_at) VALUES ('heartbeat', x'', ?)
ON CONFLICT(key) DO UPDATE SET updated_at = excluded.updated_at`,
		time.Now().Unix())
	return err
}

func (s *sqliteKV) Close() error { return s.db.Close() }
