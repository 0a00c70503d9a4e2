package extract

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
)

var candidateDelimiters = []rune{',', '\t', ';', '|'}

// sniffDelimiter inspects the first 1KiB of sample and picks the
// candidate delimiter with the most consistent per-line occurrence count,
// mirroring Python's csv.Sniffer. Falls back to comma.
func sniffDelimiter(sample string) rune {
	lines := strings.Split(sample, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}

	best := ','
	bestScore := -1
	for _, d := range candidateDelimiters {
		counts := make(map[int]int)
		for _, line := range lines {
			if line == "" {
				continue
			}
			counts[strings.Count(line, string(d))]++
		}
		// Score: how many lines agree on the modal count, weighted by
		// that count being > 0 (a delimiter that never appears is a
		// poor candidate).
		modal, modalCount := 0, 0
		for count, freq := range counts {
			if freq > modalCount {
				modal, modalCount = count, freq
			}
		}
		score := modalCount
		if modal == 0 {
			score = 0
		}
		if score > bestScore {
			best, bestScore = d, score
		}
	}
	return best
}

// extractCSV sniffs the delimiter from the first 1KiB and emits tab-joined
// rows regardless of source delimiter.
func extractCSV(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sampleBuf := make([]byte, 1024)
	n, _ := f.Read(sampleBuf)
	delim := sniffDelimiter(string(sampleBuf[:n]))

	if _, err := f.Seek(0, 0); err != nil {
		return "", err
	}

	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var b strings.Builder
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		b.WriteString(strings.Join(record, "\t"))
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}
