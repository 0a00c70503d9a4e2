// Package crawler walks a root directory, detects changed files against
// the Store's snapshot, drives extraction and chunking, and reconciles
// deletions as the indexing pipeline's crawler/indexer stage.
package crawler

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cortexfs/filesearch/internal/chunk"
	"github.com/cortexfs/filesearch/internal/extract"
	"github.com/cortexfs/filesearch/internal/ferrors"
	"github.com/cortexfs/filesearch/internal/store"
)

// Crawler drives index_root against a single Store handle.
type Crawler struct {
	store *store.Store
	cfg   Config
}

// New creates a Crawler writing to st under cfg.
func New(st *store.Store, cfg Config) *Crawler {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &Crawler{store: st, cfg: cfg}
}

// authorize rejects root unless it falls under an allowed prefix (an empty
// allow-list authorizes everything). Existence on disk is checked by
// IndexRoot, not here.
func (c *Crawler) authorize(root string) error {
	if len(c.cfg.AllowedRoots) > 0 {
		authorized := false
		for _, allowed := range c.cfg.AllowedRoots {
			if root == allowed || strings.HasPrefix(root, allowed+string(filepath.Separator)) {
				authorized = true
				break
			}
		}
		if !authorized {
			return ferrors.NotAuthorized(root)
		}
	}
	return nil
}

type extraction struct {
	chunks []string
	err    error
}

// IndexRoot walks root, change-detects against the existing snapshot,
// extracts, chunks, writes, then reconciles deletions. Per-file failures
// are counted, never abort the crawl; only authorization and a missing
// root are fatal.
func (c *Crawler) IndexRoot(ctx context.Context, root string, mode Mode, priority Priority) (Result, error) {
	start := time.Now()
	root = filepath.Clean(root)
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	if err := c.authorize(root); err != nil {
		return Result{}, err
	}
	if _, err := os.Stat(root); err != nil {
		return Result{}, ferrors.RootMissing(root)
	}

	existing, err := c.store.ExistingUnderRoot(ctx, root)
	if err != nil {
		return Result{}, err
	}

	candidates, walkErrors := c.walk(root)

	observed := make(map[string]bool, len(candidates))
	var toIndex []candidate
	result := Result{Errors: walkErrors}

	for _, cand := range candidates {
		observed[cand.path] = true

		if len(c.cfg.SupportedExtensions) > 0 && !c.cfg.SupportedExtensions[cand.ext] {
			result.Skipped++
			continue
		}
		if c.cfg.MaxFileSizeBytes > 0 && cand.size > c.cfg.MaxFileSizeBytes {
			result.Skipped++
			continue
		}

		if mode == ModeIncremental {
			if prior, ok := existing[cand.path]; ok && prior.Size == cand.size && prior.MTime == cand.mtime {
				result.Skipped++
				continue
			}
		}

		toIndex = append(toIndex, cand)
	}

	extracted := make([]extraction, len(toIndex))
	if len(toIndex) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.cfg.Workers)
		for i, cand := range toIndex {
			i, cand := i, cand
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				text, skipped, err := extract.Extract(cand.path)
				if err != nil {
					extracted[i] = extraction{err: err}
					return nil
				}
				if skipped || strings.TrimSpace(text) == "" {
					extracted[i] = extraction{}
					return nil
				}
				extracted[i] = extraction{chunks: chunk.Split(text, c.cfg.ChunkSize, c.cfg.ChunkOverlap)}
				return nil
			})
		}
		_ = g.Wait() // per-file errors are carried in `extracted`, never fatal
	}

	// Writes are serialized here, in walk order, preserving the ordering
	// guarantee even though extraction above ran concurrently.
	for i, cand := range toIndex {
		select {
		case <-ctx.Done():
			result.Cancelled = true
			result.DurationMS = time.Since(start).Milliseconds()
			return result, nil
		default:
		}

		ex := extracted[i]
		if ex.err != nil {
			slog.Warn("index_file_failed", slog.String("path", cand.path), slog.String("error", ex.err.Error()))
			result.Errors++
			continue
		}
		if ex.chunks == nil {
			result.Skipped++
			continue
		}

		rootTag := root
		if _, err := c.store.Index(ctx, cand.path, cand.size, cand.mtime, cand.ext, rootTag, ex.chunks); err != nil {
			if ferrors.IsFatal(err) {
				result.DurationMS = time.Since(start).Milliseconds()
				return result, err
			}
			slog.Warn("index_file_failed", slog.String("path", cand.path), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Indexed++

		if priority == PriorityLow {
			time.Sleep(lowPriorityYield)
		}
	}

	if result.Cancelled {
		result.DurationMS = time.Since(start).Milliseconds()
		return result, nil
	}

	for path := range existing {
		if !observed[path] {
			if err := c.store.DeleteFile(ctx, path); err != nil {
				result.Errors++
				continue
			}
			result.Removed++
		}
	}

	result.DurationMS = time.Since(start).Milliseconds()
	slog.Info("index_root_complete",
		slog.String("root", root),
		slog.Int("indexed", result.Indexed),
		slog.Int("skipped", result.Skipped),
		slog.Int("removed", result.Removed),
		slog.Int("errors", result.Errors),
		slog.Int64("duration_ms", result.DurationMS))

	return result, nil
}
