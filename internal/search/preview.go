package search

import (
	"context"
)

// Preview fetches the chunk at (path, pointer) and centers a before+after
// character window in it when the chunk is longer than that window.
func (e *Engine) Preview(ctx context.Context, path, pointer string, before, after int) (Preview, error) {
	content, fileSize, err := e.store.LoadChunk(ctx, path, pointer)
	if err != nil {
		return Preview{}, err
	}

	window := before + after
	runes := []rune(content)
	if len(runes) <= window {
		return Preview{
			Path:      path,
			Pointer:   pointer,
			Content:   content,
			Truncated: false,
			FileSize:  fileSize,
		}, nil
	}

	center := len(runes) / 2
	start := center - window/2
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(runes) {
		end = len(runes)
		start = end - window
	}

	return Preview{
		Path:      path,
		Pointer:   pointer,
		Content:   string(runes[start:end]),
		Truncated: true,
		FileSize:  fileSize,
	}, nil
}
