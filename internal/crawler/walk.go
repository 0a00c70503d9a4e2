package crawler

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// candidate is one file surviving the walk's name and symlink pruning,
// still awaiting IndexRoot's extension/size filters and the change
// decision against the existing snapshot.
type candidate struct {
	path  string
	size  int64
	mtime float64
	ext   string
}

// prunedName reports whether a directory or file entry should be skipped
// by name: entries beginning with "." or "$" are pruned unless the caller
// has opted into hidden files.
func prunedName(name string, hiddenFiles bool) bool {
	if hiddenFiles {
		return false
	}
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "$")
}

// walk enumerates root in filesystem order, returning every file not pruned
// by name or as a symlink; the extension/size filters are applied later by
// IndexRoot. Directory access errors prune that
// subtree and increment errCount; they never abort the walk.
func (c *Crawler) walk(root string) (candidates []candidate, errCount int) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errCount++
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path != root && prunedName(name, c.cfg.HiddenFiles) {
				return filepath.SkipDir
			}
			return nil
		}

		if prunedName(name, c.cfg.HiddenFiles) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			errCount++
			return nil
		}
		if !c.cfg.FollowSymlinks && info.Mode()&os.ModeSymlink != 0 {
			return nil
		}

		candidates = append(candidates, candidate{
			path:  path,
			size:  info.Size(),
			mtime: float64(info.ModTime().UnixNano()) / 1e9,
			ext:   strings.ToLower(filepath.Ext(name)),
		})
		return nil
	})
	return candidates, errCount
}
