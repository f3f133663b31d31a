//go:build unix

package identity

import (
	"fmt"
	"io/fs"

	"golang.org/x/sys/unix"
)

func statIdentity(path string) (string, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return "", &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	if st.Mode&unix.S_IFMT != unix.S_IFDIR {
		return "", ErrNotDirectory
	}
	return fmt.Sprintf("%d,%d", st.Dev, st.Ino), nil
}
