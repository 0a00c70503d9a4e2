// Package extract implements per-format text extraction: a polymorphic
// dispatch over file extension that produces a single plain-text stream
// per file, or reports that the file should be silently skipped.
package extract

import (
	"path/filepath"
	"strings"

	"github.com/cortexfs/filesearch/internal/ferrors"
)

// plainTextExtensions are read as bytes and decoded, optionally with tag
// stripping for markup formats.
var plainTextExtensions = map[string]bool{
	".txt": true, ".md": true, ".json": true, ".xml": true,
	".yaml": true, ".yml": true, ".sql": true, ".html": true, ".htm": true,
	".go": true, ".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".java": true, ".c": true, ".h": true, ".cpp": true, ".hpp": true, ".cs": true,
	".rb": true, ".rs": true, ".php": true, ".sh": true, ".css": true, ".toml": true,
	".ini": true, ".cfg": true, ".conf": true,
}

var markupExtensions = map[string]bool{".html": true, ".htm": true, ".xml": true}

// Extract dispatches on the extension of path and returns its extracted
// text. skipped is true when the format is not handled, or a format's
// extraction backend is unavailable — this is never an error.
func Extract(path string) (text string, skipped bool, err error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".pdf":
		text, err = extractPDF(path)
	case ".docx":
		text, err = extractDOCX(path)
	case ".doc":
		// Legacy binary format: no extraction backend available, skip.
		return "", true, nil
	case ".pptx":
		text, err = extractPPTX(path)
	case ".ppt":
		return "", true, nil
	case ".xlsx":
		text, err = extractXLSX(path)
	case ".xls":
		// Legacy binary workbook: excelize reads only OOXML, so no backend, skip.
		return "", true, nil
	case ".csv":
		text, err = extractCSV(path)
	case ".zip":
		text, err = extractZip(path)
	default:
		if plainTextExtensions[ext] {
			text, skipped, err = extractText(path, markupExtensions[ext])
			return text, skipped, err
		}
		return "", true, nil
	}

	if err != nil {
		return "", false, ferrors.PerFileError(ferrors.ErrCodeExtractFailed, path, err)
	}
	return text, false, nil
}
