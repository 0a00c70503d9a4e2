package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	text, skipped, err := Extract(path)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, "hello world", text)
}

func TestExtract_UnsupportedExtensionSkips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01}, 0o644))

	text, skipped, err := Extract(path)
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Empty(t, text)
}

func TestExtract_HTMLStripsTags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.html")
	require.NoError(t, os.WriteFile(path, []byte("<html><body><p>hello</p> <b>world</b></body></html>"), 0o644))

	text, skipped, err := Extract(path)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Contains(t, text, "hello")
	assert.Contains(t, text, "world")
	assert.NotContains(t, text, "<p>")
}

func TestExtract_CSVSniffsDelimiter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(path, []byte("a;b;c\n1;2;3\n"), 0o644))

	text, skipped, err := Extract(path)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, "a\tb\tc\n1\t2\t3", text)
}

func TestExtract_ZipListsAndInlinesSmallMembers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.zip")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("note.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("inlined content"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	text, skipped, err := Extract(path)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Contains(t, text, "note.txt")
	assert.Contains(t, text, "inlined content")
}

func TestExtract_DocExtensionSkipsWithoutBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.doc")
	require.NoError(t, os.WriteFile(path, []byte("binary"), 0o644))

	text, skipped, err := Extract(path)
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Empty(t, text)
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   rune
	}{
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"tab", "a\tb\tc\n1\t2\t3\n", '\t'},
		{"semicolon", "a;b;c\n1;2;3\n", ';'},
		{"pipe", "a|b|c\n1|2|3\n", '|'},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sniffDelimiter(tc.sample))
		})
	}
}
