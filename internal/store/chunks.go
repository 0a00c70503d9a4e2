package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cortexfs/filesearch/internal/ferrors"
)

// Index atomically upserts a File row and replaces its Chunk rows in a
// single transaction: a crash mid-write leaves the previous file state
// intact rather than a half-written chunk set.
func (s *Store) Index(ctx context.Context, path string, size int64, mtime float64, ext, rootTag string, chunks []string) (fileID int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, ferrors.PerFileError(ferrors.ErrCodeStoreWrite, path, err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
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
	if qerr := tx.QueryRowContext(ctx, `SELECT id FROM files WHERE path = ?`, path).Scan(&id); qerr != nil {
		return 0, ferrors.PerFileError(ferrors.ErrCodeStoreWrite, path, qerr)
	}

	if err := replaceChunksTx(ctx, tx, id, chunks); err != nil {
		return 0, ferrors.PerFileError(ferrors.ErrCodeStoreWrite, path, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, ferrors.PerFileError(ferrors.ErrCodeStoreWrite, path, err)
	}
	return id, nil
}

// replaceChunksTx deletes all chunks for fileID, then inserts contents in
// order as chunk_0 .. chunk_{n-1}, mirroring the FTS5 table in lockstep.
func replaceChunksTx(ctx context.Context, tx *sql.Tx, fileID int64, contents []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks_fts WHERE file_id = ?`, fileID); err != nil {
		return fmt.Errorf("delete fts rows: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE file_id = ?`, fileID); err != nil {
		return fmt.Errorf("delete chunk rows: %w", err)
	}

	insChunk, err := tx.PrepareContext(ctx, `INSERT INTO chunks(file_id, pointer, content) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare chunk insert: %w", err)
	}
	defer insChunk.Close()

	insFTS, err := tx.PrepareContext(ctx, `INSERT INTO chunks_fts(file_id, pointer, content) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare fts insert: %w", err)
	}
	defer insFTS.Close()

	for i, content := range contents {
		pointer := fmt.Sprintf("chunk_%d", i)
		if _, err := insChunk.ExecContext(ctx, fileID, pointer, content); err != nil {
			return fmt.Errorf("insert chunk %s: %w", pointer, err)
		}
		if _, err := insFTS.ExecContext(ctx, fileID, pointer, content); err != nil {
			return fmt.Errorf("insert fts row %s: %w", pointer, err)
		}
	}
	return nil
}

// LoadChunk fetches chunk content for path, falling back to chunk_0 when
// pointer is empty. Returns NotIndexed if the file has no rows.
func (s *Store) LoadChunk(ctx context.Context, path, pointer string) (content string, fileSize int64, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var fileID int64
	if err := s.db.QueryRowContext(ctx, `SELECT id, size FROM files WHERE path = ?`, path).Scan(&fileID, &fileSize); err != nil {
		return "", 0, ferrors.NotIndexed(path)
	}

	if pointer == "" {
		pointer = "chunk_0"
	}

	if err := s.db.QueryRowContext(ctx, `
		SELECT content FROM chunks WHERE file_id = ? AND pointer = ?
	`, fileID, pointer).Scan(&content); err != nil {
		return "", 0, ferrors.NotIndexed(path)
	}
	return content, fileSize, nil
}
