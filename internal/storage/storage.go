// Package storage provides atomic file operations for data kept in ~/.cdh/
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DirName is the name of the data directory inside the user's home.
const DirName = ".cdh"

// DataDir returns the path to ~/.cdh/ without creating it.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DirName), nil
}

// TempPath returns the per-process temporary path used while writing path.
func TempPath(path string) string {
	return fmt.Sprintf("%s.%d.tmp", path, os.Getpid())
}

// WriteAtomic writes data to path via a temp file unique to this process,
// then renames it over path. Readers never observe a partial file.
// Concurrent writers are not serialized: the last rename wins.
func WriteAtomic(path string, data []byte) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tempPath := TempPath(path)

	if err := os.WriteFile(tempPath, data, 0o600); err != nil {
		os.Remove(tempPath)
		return err
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}

// ReadOptional reads path. A missing file yields (nil, false, nil).
func ReadOptional(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}
