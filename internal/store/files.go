package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cortexfs/filesearch/internal/ferrors"
)

// UpsertFile inserts or replaces the File row identified by path and returns
// its id. It never touches chunk rows and runs outside any transaction;
// Index performs the same upsert together with the chunk replacement in one
// transaction.
func (s *Store) UpsertFile(ctx context.Context, path string, size int64, mtime float64, ext, rootTag string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files(path, size, mtime, ext, root_tag, accessible)
		VALUES (?, ?, ?, ?, ?, 1)
		ON CONFLICT(path) DO UPDATE SET
			size = excluded.size,
			mtime = excluded.mtime,
			ext = excluded.ext,
			root_tag = excluded.root_tag,
			accessible = 1
	`, path, size, mtime, ext, rootTag)
	if err != nil {
		return 0, ferrors.PerFileError(ferrors.ErrCodeStoreWrite, path, err)
	}

	// ON CONFLICT UPDATE does not carry LastInsertId forward (the connection
	// keeps the previous insert's rowid), so the id is always looked up.
	var id int64
	if qerr := s.db.QueryRowContext(ctx, `SELECT id FROM files WHERE path = ?`, path).Scan(&id); qerr != nil {
		return 0, ferrors.PerFileError(ferrors.ErrCodeStoreWrite, path, qerr)
	}
	return id, nil
}

// ExistingUnderRoot returns a (size, mtime) snapshot of every File row whose
// path falls under root, in one query, for change detection. Uses a
// normalized-prefix range scan rather than LIKE: root is treated as an
// absolute-path prefix, resolving root_tag as an ancestor-directory tag.
func (s *Store) ExistingUnderRoot(ctx context.Context, root string) (map[string]ExistingFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := root
	if len(prefix) == 0 || prefix[len(prefix)-1] != filepath.Separator {
		prefix += string(filepath.Separator)
	}
	upperBound := prefix + "\xff"
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, size, mtime FROM files
		WHERE path >= ? AND path < ?
	`, prefix, upperBound)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeStoreWrite, fmt.Errorf("existing_under_root: %w", err))
	}
	defer rows.Close()

	out := make(map[string]ExistingFile)
	for rows.Next() {
		var path string
		var ef ExistingFile
		if err := rows.Scan(&path, &ef.Size, &ef.MTime); err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeStoreWrite, err)
		}
		out[path] = ef
	}
	return out, rows.Err()
}

// DeleteFile removes the File row, its Chunk rows, and their inverted-index
// postings. Deleting a path that does not exist is a no-op, matching
// forget's "void, no error" contract.
func (s *Store) DeleteFile(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM files WHERE path = ?`, path).Scan(&id)
	if err != nil {
		return nil // not indexed: nothing to forget
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ferrors.Wrap(ferrors.ErrCodeStoreWrite, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks_fts WHERE file_id = ?`, id); err != nil {
		return ferrors.Wrap(ferrors.ErrCodeStoreWrite, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE file_id = ?`, id); err != nil {
		return ferrors.Wrap(ferrors.ErrCodeStoreWrite, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id); err != nil {
		return ferrors.Wrap(ferrors.ErrCodeStoreWrite, err)
	}

	return tx.Commit()
}

// Stats is a point-in-time summary of index size.
type Stats struct {
	TotalFiles  int
	TotalChunks int
	LastIndexed float64
	DBSizeBytes int64
}

// Stats reports file/chunk counts, the most recent mtime seen, and the
// on-disk database size (0 for in-memory stores).
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&stats.TotalFiles); err != nil {
		return Stats{}, ferrors.Wrap(ferrors.ErrCodeStoreWrite, err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&stats.TotalChunks); err != nil {
		return Stats{}, ferrors.Wrap(ferrors.ErrCodeStoreWrite, err)
	}

	var lastIndexed sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(mtime) FROM files`).Scan(&lastIndexed); err != nil {
		return Stats{}, ferrors.Wrap(ferrors.ErrCodeStoreWrite, err)
	}
	stats.LastIndexed = lastIndexed.Float64

	if s.path != "" {
		if info, err := os.Stat(s.path); err == nil {
			stats.DBSizeBytes = info.Size()
		}
	}

	return stats, nil
}
