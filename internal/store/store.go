package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite" // pure Go SQLite driver, no CGO

	"github.com/cortexfs/filesearch/internal/ferrors"
)

// Store is the persistent index backend. It owns the files table, the
// chunks table, and the FTS5 inverted index over chunk content. It
// is single-writer per handle; callers needing parallel roots open one
// Store per root.
type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
	lock *flock.Flock
}

// validateIntegrity runs PRAGMA integrity_check and confirms the FTS5 table
// exists before the database is trusted. A corrupt file is removed rather
// than returned to the caller, so the next open starts from a clean slate.
func validateIntegrity(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return fmt.Errorf("open for validation: %w", err)
	}
	defer db.Close()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("integrity check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("database corrupted: %s", result)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='chunks_fts'`).Scan(&count); err != nil {
		return fmt.Errorf("query schema: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("fts table chunks_fts missing")
	}
	return nil
}

// Open creates or opens the Store database at path. An empty path opens an
// in-memory database for tests. A per-directory advisory lock (".store.lock"
// next to the database) is acquired so that two processes never become
// concurrent writers on the same file.
func Open(path string) (*Store, error) {
	var dsn string
	var fl *flock.Flock

	if path == "" {
		dsn = ":memory:"
	} else {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeStoreWrite, fmt.Errorf("create data dir %s: %w", dir, err))
		}

		if err := validateIntegrity(path); err != nil {
			slog.Warn("store_corrupted", slog.String("path", path), slog.String("error", err.Error()))
			_ = os.Remove(path)
			_ = os.Remove(path + "-wal")
			_ = os.Remove(path + "-shm")
			slog.Info("store_cleared", slog.String("path", path), slog.String("reason", "corruption detected, please reindex"))
		}

		fl = flock.New(filepath.Join(dir, ".store.lock"))
		locked, err := fl.TryLock()
		if err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeStoreWrite, fmt.Errorf("acquire store lock: %w", err))
		}
		if !locked {
			return nil, ferrors.New(ferrors.ErrCodeStoreWrite, "store is locked by another process", nil)
		}

		dsn = path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		if fl != nil {
			_ = fl.Unlock()
		}
		return nil, ferrors.Wrap(ferrors.ErrCodeStoreWrite, fmt.Errorf("open database: %w", err))
	}

	// Single connection: SQLite is single-writer and this keeps the Go
	// driver from fanning out concurrent writers across its pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -65536",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			if fl != nil {
				_ = fl.Unlock()
			}
			return nil, ferrors.Wrap(ferrors.ErrCodeStoreWrite, fmt.Errorf("set pragma %q: %w", p, err))
		}
	}

	s := &Store{db: db, path: path, lock: fl}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		if fl != nil {
			_ = fl.Unlock()
		}
		return nil, ferrors.Wrap(ferrors.ErrCodeStoreWrite, fmt.Errorf("init schema: %w", err))
	}
	return s, nil
}

// initSchema idempotently creates the files/chunks tables, the FTS5
// virtual table over chunk content, and supporting indices. Additive-only:
// it never drops or rewrites an existing column.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT UNIQUE NOT NULL,
		size INTEGER NOT NULL,
		mtime REAL NOT NULL,
		ext TEXT NOT NULL,
		root_tag TEXT,
		accessible INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS chunks (
		file_id INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
		pointer TEXT NOT NULL,
		content TEXT NOT NULL,
		PRIMARY KEY (file_id, pointer)
	);

	CREATE VIRTUAL TABLE IF NOT EXISTS chunks_fts USING fts5(
		file_id UNINDEXED,
		pointer UNINDEXED,
		content,
		tokenize = 'unicode61'
	);

	CREATE INDEX IF NOT EXISTS idx_files_path ON files(path);
	CREATE INDEX IF NOT EXISTS idx_files_mtime ON files(mtime);
	CREATE INDEX IF NOT EXISTS idx_files_root_tag ON files(root_tag);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close flushes the WAL to the main database file and releases the
// cross-process lock.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	err := s.db.Close()
	s.db = nil
	if s.lock != nil {
		_ = s.lock.Unlock()
	}
	return err
}
