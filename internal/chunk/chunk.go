// Package chunk splits extracted text into overlapping, word-boundary
// aligned segments for indexing.
package chunk

import "strings"

var boundaryChars = map[rune]bool{
	' ': true, '\n': true, '\t': true, '.': true, '!': true, '?': true,
}

// Split breaks text into an ordered sequence of chunks of target length
// size with overlap characters of repetition between consecutive chunks.
// Chunk boundaries snap to whitespace or sentence punctuation where one
// exists within the back half of the window, keeping words intact; each
// returned chunk is non-empty post-trim.
func Split(text string, size, overlap int) []string {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil
	}

	if n <= size {
		trimmed := strings.TrimSpace(string(runes))
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}

	var chunks []string
	start := 0
	for start < n {
		end := start + size
		if end < n {
			minEnd := start + size/2
			snapped := -1
			for i := end; i >= minEnd && i < n; i-- {
				if boundaryChars[runes[i]] {
					snapped = i + 1
					break
				}
			}
			if snapped != -1 {
				end = snapped
			}
		} else {
			end = n
		}

		piece := strings.TrimSpace(string(runes[start:end]))
		if piece != "" {
			chunks = append(chunks, piece)
		}

		next := end - overlap
		if next <= start {
			// Guard against a non-advancing boundary snap producing an
			// infinite loop when overlap >= the snapped chunk length.
			next = end
		}
		start = next
	}

	return chunks
}
