// Package cache holds the directory listings used for path completion.
package cache

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Entry is one item of a directory listing.
type Entry struct {
	Name  string
	IsDir bool
}

// ReadDir lists dir in name order. Symlinks are followed so a link to a
// directory is reported as one; entries that disappear before they can be
// inspected are skipped.
func ReadDir(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		isDir := de.IsDir()
		if de.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(filepath.Join(dir, de.Name()))
			if err != nil {
				continue
			}
			isDir = info.IsDir()
		}
		entries = append(entries, Entry{Name: de.Name(), IsDir: isDir})
	}
	return entries, nil
}
