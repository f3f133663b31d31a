// Package abspath canonicalizes directory paths for display and storage.
//
// Paths are made absolute and symlink-free, then rewritten to prefer the
// name of a symlink living directly under the filesystem root. On systems
// where /home or /tmp are links into another tree (for example
// /tmp -> /private/tmp) users keep seeing the short, familiar name.
package abspath

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type alias struct {
	target    string // fully resolved target of the link
	preferred string // the link itself, e.g. /tmp
}

// Canonicalizer rewrites resolved paths back to root-level symlink names.
type Canonicalizer struct {
	aliases []alias
}

// New scans the filesystem root for symlinks.
func New() *Canonicalizer {
	return NewFromRoot(string(filepath.Separator))
}

// NewFromRoot scans root for symlinks. Entries that are not links or whose
// targets cannot be resolved are ignored.
func NewFromRoot(root string) *Canonicalizer {
	entries, err := os.ReadDir(root)
	if err != nil {
		return &Canonicalizer{}
	}

	var aliases []alias
	for _, e := range entries {
		preferred := filepath.Join(root, e.Name())
		dest, err := os.Readlink(preferred)
		if err != nil {
			continue
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(root, dest)
		}
		target, err := filepath.EvalSymlinks(dest)
		if err != nil {
			continue
		}
		aliases = append(aliases, alias{target: target, preferred: preferred})
	}

	// Longest targets first, so /cygdrive/c/projects wins over /cygdrive/c
	sort.SliceStable(aliases, func(i, j int) bool {
		return len(aliases[i].target) > len(aliases[j].target)
	})

	return &Canonicalizer{aliases: aliases}
}

// Abs returns the canonical absolute form of path.
// Fails if path (or a component of it) does not exist.
func (c *Canonicalizer) Abs(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return c.Prefer(resolved), nil
}

// Prefer rewrites an already resolved path to use the first matching
// root-level alias.
func (c *Canonicalizer) Prefer(resolved string) string {
	sep := string(filepath.Separator)
	for _, a := range c.aliases {
		if resolved == a.target {
			return a.preferred
		}
		if rest, ok := strings.CutPrefix(resolved, a.target+sep); ok {
			return a.preferred + sep + rest
		}
	}
	return resolved
}
