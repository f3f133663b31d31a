// Package identity maps pathnames to physical directory identities.
//
// An identity token encodes device and inode (volume serial and file index
// on Windows) as "<dev>,<ino>". Two pathnames reaching the same directory
// produce the same token, and a renamed directory keeps its token. The
// textual form is opaque; only equality is meaningful.
package identity

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/raphi011/cdh/internal/log"
)

// ErrNotDirectory is reported when a path exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

type result struct {
	token string
	ok    bool
}

// Resolver resolves and memoizes identity tokens for one invocation.
// Failures are cached too, so a bad path is reported once.
type Resolver struct {
	log   *log.Logger
	cache map[string]result
	stat  func(path string) (string, error)
}

// NewResolver creates a resolver that reports failures to l.
func NewResolver(l *log.Logger) *Resolver {
	return &Resolver{
		log:   l,
		cache: make(map[string]result),
		stat:  statIdentity,
	}
}

// Resolve returns the identity token for path.
// ok is false when path is not an accessible directory. A diagnostic
// naming the path and the cause has then been written.
func (r *Resolver) Resolve(path string) (token string, ok bool) {
	if res, found := r.cache[path]; found {
		return res.token, res.ok
	}

	token, err := r.stat(path)
	if err != nil {
		r.log.Warnf("%s", describe(path, err))
		r.cache[path] = result{}
		return "", false
	}

	r.cache[path] = result{token: token, ok: true}
	return token, true
}

func describe(path string, err error) string {
	if errors.Is(err, ErrNotDirectory) {
		return fmt.Sprintf("%s: %v", path, ErrNotDirectory)
	}
	return fmt.Sprintf("%s: %v", path, unwrapPathError(err))
}

// unwrapPathError strips the fs.PathError wrapper so the path is named once.
func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
