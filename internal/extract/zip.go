package extract

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const zipInlineSizeCap = 10 * 1024 // 10 KiB

var inlinableZipExt = map[string]bool{".txt": true, ".md": true, ".json": true, ".xml": true, ".csv": true}

// extractZip emits a listing of every archive member and inlines the
// contents of inner text files no larger than zipInlineSizeCap.
func extractZip(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	var b strings.Builder
	for _, f := range zr.File {
		b.WriteString(fmt.Sprintf("%s (%d bytes)\n", f.Name, f.UncompressedSize64))

		ext := strings.ToLower(filepath.Ext(f.Name))
		if !inlinableZipExt[ext] || f.UncompressedSize64 > zipInlineSizeCap {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}

		if decoded, ok := decodeText(data); ok {
			b.WriteString(decoded)
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String()), nil
}
