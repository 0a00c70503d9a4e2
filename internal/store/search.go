package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cortexfs/filesearch/internal/ferrors"
)

// Search runs ftsExpr against the inverted index, joins filters, and
// returns rows ordered by rank ascending (lower = better, BM25
// convention) limited to limit rows. Snippets use opts'
// markers and a token window centered on the match.
func (s *Store) Search(ctx context.Context, ftsExpr string, filters SearchFilters, limit int, opts SnippetOptions) ([]SearchRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder

	b.WriteString(`
		SELECT f.path, c.pointer,
		       snippet(chunks_fts, 2, ?, ?, ?, ?) AS snip,
		       bm25(chunks_fts) AS score,
		       f.ext, f.mtime
		FROM chunks_fts c
		JOIN files f ON f.id = c.file_id
		WHERE chunks_fts MATCH ?
	`)
	// snippet() args land before the MATCH arg positionally in SQLite's
	// bound-parameter order since they appear earlier in the statement.
	args := []any{opts.PreMark, opts.PostMark, opts.Ellipsis, opts.MaxTokens, ftsExpr}

	clause, filterArgs := filterClause(filters)
	b.WriteString(clause)
	args = append(args, filterArgs...)

	b.WriteString(" ORDER BY score ASC LIMIT ?")
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		if strings.Contains(err.Error(), "fts5:") || strings.Contains(err.Error(), "syntax error") {
			return nil, ferrors.BadFilter(fmt.Sprintf("invalid query expression: %v", err))
		}
		return nil, ferrors.Wrap(ferrors.ErrCodeStoreWrite, err)
	}
	defer rows.Close()

	var out []SearchRow
	for rows.Next() {
		var r SearchRow
		if err := rows.Scan(&r.Path, &r.Pointer, &r.Snippet, &r.Score, &r.Ext, &r.MTime); err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeStoreWrite, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SearchAll returns rows for every chunk matching filters without an FTS
// expression, for the Query Parser's match-all degenerate case. Rows are
// ordered most-recently-modified first since there is no rank to sort by;
// Score is always 0.
func (s *Store) SearchAll(ctx context.Context, filters SearchFilters, limit int, snippetChars int) ([]SearchRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	b.WriteString(`
		SELECT f.path, c.pointer, substr(c.content, 1, ?), 0.0, f.ext, f.mtime
		FROM chunks c
		JOIN files f ON f.id = c.file_id
		WHERE 1=1
	`)
	args := []any{snippetChars}

	clause, filterArgs := filterClause(filters)
	b.WriteString(clause)
	args = append(args, filterArgs...)

	b.WriteString(" ORDER BY f.mtime DESC LIMIT ?")
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeStoreWrite, err)
	}
	defer rows.Close()

	var out []SearchRow
	for rows.Next() {
		var r SearchRow
		if err := rows.Scan(&r.Path, &r.Pointer, &r.Snippet, &r.Score, &r.Ext, &r.MTime); err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeStoreWrite, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// filterClause builds the shared extension/year/root/modified-after
// predicate appended by both Search and SearchAll.
func filterClause(filters SearchFilters) (string, []any) {
	var b strings.Builder
	var args []any

	if len(filters.Extensions) > 0 {
		b.WriteString(" AND f.ext IN (" + placeholders(len(filters.Extensions)) + ")")
		for _, e := range filters.Extensions {
			args = append(args, e)
		}
	}

	if len(filters.Years) > 0 {
		var yearClauses []string
		for _, y := range filters.Years {
			start := time.Date(y, 1, 1, 0, 0, 0, 0, time.Local)
			end := time.Date(y, 12, 31, 23, 59, 59, 0, time.Local)
			yearClauses = append(yearClauses, "(f.mtime BETWEEN ? AND ?)")
			args = append(args, float64(start.Unix()), float64(end.Unix()))
		}
		b.WriteString(" AND (" + strings.Join(yearClauses, " OR ") + ")")
	}

	if len(filters.Roots) > 0 {
		var rootClauses []string
		for _, r := range filters.Roots {
			rootClauses = append(rootClauses, "f.path >= ? AND f.path < ?")
			args = append(args, r, r+"\xff")
		}
		b.WriteString(" AND ((" + strings.Join(rootClauses, ") OR (") + "))")
	}

	if !filters.ModifiedAfter.IsZero() {
		b.WriteString(" AND f.mtime >= ?")
		args = append(args, float64(filters.ModifiedAfter.Unix()))
	}

	return b.String(), args
}

func placeholders(n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = "?"
	}
	return strings.Join(ps, ",")
}
