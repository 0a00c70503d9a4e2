package extract

import (
	"archive/zip"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var slidePath = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
var drawingTextRun = regexp.MustCompile(`<a:t>(.*?)</a:t>`)

// extractPPTX reads each slideN.xml entry of the OOXML zip container and
// concatenates its text-bearing shape strings, slide by slide. No
// presentation-parsing library exists in the dependency pack; slides are
// themselves a zip of XML parts, the same underlying technique excelize
// and nguyenthenguyen/docx use for their own formats, so this stays in
// their idiom.
func extractPPTX(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	type slide struct {
		n    int
		text string
	}
	var slides []slide

	for _, f := range zr.File {
		m := slidePath.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])

		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}

		matches := drawingTextRun.FindAllSubmatch(data, -1)
		var b strings.Builder
		for _, mm := range matches {
			b.Write(mm[1])
			b.WriteString(" ")
		}
		text := strings.TrimSpace(b.String())
		if text != "" {
			slides = append(slides, slide{n: n, text: text})
		}
	}

	sort.Slice(slides, func(i, j int) bool { return slides[i].n < slides[j].n })

	var out []string
	for _, s := range slides {
		out = append(out, fmt.Sprintf("Slide %d:\n%s", s.n, s.text))
	}
	return strings.Join(out, "\n\n"), nil
}
