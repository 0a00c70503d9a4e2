// Package store implements the persistent index backend: file metadata,
// chunk rows, and a SQLite FTS5 inverted index kept consistent in the same
// transactions as the rows that feed it.
package store

import "time"

// File is the identity and attributes of one indexed path.
type File struct {
	ID         int64
	Path       string
	Size       int64
	MTime      float64
	Ext        string
	RootTag    string
	Accessible bool
}

// Chunk is one bounded-length segment of a file's extracted text.
type Chunk struct {
	FileID  int64
	Pointer string
	Content string
}

// ExistingFile is the (size, mtime) snapshot used for change detection.
type ExistingFile struct {
	Size  int64
	MTime float64
}

// SearchFilters narrows a Search call. Zero-value fields are unset.
type SearchFilters struct {
	Extensions    []string
	Years         []int
	Roots         []string
	ModifiedAfter time.Time
}

// SearchRow is one ranked hit returned from the inverted index.
type SearchRow struct {
	Path    string
	Pointer string
	Snippet string
	Score   float64
	Ext     string
	MTime   float64
}

// SnippetOptions controls how Search highlights matches.
type SnippetOptions struct {
	PreMark    string
	PostMark   string
	Ellipsis   string
	MaxTokens  int
}

// DefaultSnippetOptions returns the standard highlight markers and a
// 64-token snippet window: <mark>…</mark>, "...".
func DefaultSnippetOptions() SnippetOptions {
	return SnippetOptions{
		PreMark:   "<mark>",
		PostMark:  "</mark>",
		Ellipsis:  "...",
		MaxTokens: 64,
	}
}
