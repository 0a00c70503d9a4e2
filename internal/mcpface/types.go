package mcpface

// IndexRootInput is the input schema for the index_root tool.
type IndexRootInput struct {
	Root string `json:"root" jsonschema:"absolute path of the directory to crawl and index"`
	Full bool   `json:"full,omitempty" jsonschema:"reindex every file, ignoring the existing snapshot"`
	Low  bool   `json:"low_priority,omitempty" jsonschema:"yield between files to bound resource use"`
}

// IndexRootOutput is the output schema for the index_root tool.
type IndexRootOutput struct {
	Indexed    int   `json:"indexed"`
	Skipped    int   `json:"skipped"`
	Removed    int   `json:"removed"`
	Errors     int   `json:"errors"`
	DurationMS int64 `json:"duration_ms"`
	Cancelled  bool  `json:"cancelled"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query      string   `json:"query" jsonschema:"the search query to execute"`
	K          int      `json:"k,omitempty" jsonschema:"maximum number of results, default 10"`
	Offset     int      `json:"offset,omitempty" jsonschema:"result offset for pagination"`
	Extensions []string `json:"extensions,omitempty" jsonschema:"filter by file extension, e.g. .go, .md"`
	Years      []int    `json:"years,omitempty" jsonschema:"filter by modification year"`
	Roots      []string `json:"roots,omitempty" jsonschema:"filter by root path prefix"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Items         []SearchItem `json:"items"`
	Offset        int          `json:"offset"`
	Returned      int          `json:"returned"`
	TotalEstimate int          `json:"total_estimate"`
}

// SearchItem is one ranked, snippet-annotated search result.
type SearchItem struct {
	Path    string  `json:"path"`
	Pointer string  `json:"pointer"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
	Ext     string  `json:"ext"`
	MTime   float64 `json:"mtime"`
}

// PreviewInput is the input schema for the preview tool.
type PreviewInput struct {
	Path    string `json:"path" jsonschema:"indexed file path"`
	Pointer string `json:"pointer,omitempty" jsonschema:"chunk pointer, defaults to chunk_0"`
	Before  int    `json:"before,omitempty" jsonschema:"characters added to the preview window, default 100; the before+after window is centered in the chunk"`
	After   int    `json:"after,omitempty" jsonschema:"characters added to the preview window, default 100; the before+after window is centered in the chunk"`
}

// PreviewOutput is the output schema for the preview tool.
type PreviewOutput struct {
	Path      string `json:"path"`
	Pointer   string `json:"pointer"`
	Content   string `json:"content"`
	Truncated bool   `json:"truncated"`
	FileSize  int64  `json:"file_size"`
}

// ForgetInput is the input schema for the forget tool.
type ForgetInput struct {
	Path string `json:"path" jsonschema:"indexed file path to remove from the index"`
}

// ForgetOutput is the output schema for the forget tool.
type ForgetOutput struct {
	Path string `json:"path"`
}
