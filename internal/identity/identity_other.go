//go:build !unix && !windows

package identity

import (
	"os"
	"path/filepath"
)

// Platforms without inode numbers fall back to the cleaned absolute path,
// which still deduplicates repeated spellings of the same directory.
func statIdentity(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !fi.IsDir() {
		return "", ErrNotDirectory
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return "path," + abs, nil
}
