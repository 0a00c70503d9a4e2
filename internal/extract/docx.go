package extract

import (
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	wordTextRun = regexp.MustCompile(`<w:t[^>]*>(.*?)</w:t>`)
	wordPara    = regexp.MustCompile(`</w:p>`)
)

// extractDOCX reads document.xml via the docx library's editable view and
// joins paragraph text by blank lines; empty paragraphs are dropped.
func extractDOCX(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	raw := r.Editable().GetContent()
	// Mark paragraph boundaries before stripping runs so we can split on them.
	raw = wordPara.ReplaceAllString(raw, "</w:p>\x00")

	var paragraphs []string
	for _, seg := range strings.Split(raw, "\x00") {
		matches := wordTextRun.FindAllStringSubmatch(seg, -1)
		var b strings.Builder
		for _, m := range matches {
			b.WriteString(m[1])
		}
		p := strings.TrimSpace(b.String())
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return strings.Join(paragraphs, "\n\n"), nil
}
