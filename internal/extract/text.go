package extract

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var whitespaceRun = regexp.MustCompile(`\s+`)

// decodeText tries utf-8, utf-8 with BOM stripped, latin-1, then
// windows-1252 in order and returns the first successful decode.
func decodeText(raw []byte) (string, bool) {
	if bytes.HasPrefix(raw, utf8BOM) {
		raw = raw[len(utf8BOM):]
	}
	if utf8.Valid(raw) {
		return string(raw), true
	}

	for _, enc := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		decoded, err := enc.NewDecoder().Bytes(raw)
		if err == nil {
			return string(decoded), true
		}
	}
	return "", false
}

// extractText reads path as bytes, decodes it, and for markup formats
// strips tags and collapses whitespace. skipped is true for undecodable
// content — never an error, only a skip.
func extractText(path string, markup bool) (text string, skipped bool, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false, err
	}

	decoded, ok := decodeText(raw)
	if !ok {
		return "", true, nil
	}

	if markup {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(decoded))
		if err != nil {
			return "", true, nil
		}
		stripped := doc.Text()
		stripped = whitespaceRun.ReplaceAllString(stripped, " ")
		return strings.TrimSpace(stripped), false, nil
	}

	return decoded, false, nil
}
