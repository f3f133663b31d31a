package match

import (
	"os"
	"strconv"
	"strings"

	"github.com/raphi011/cdh/internal/history"
)

// Canonicalizer turns a literal path into its canonical absolute form.
type Canonicalizer interface {
	Abs(path string) (string, error)
}

// Result is a resolved reference.
type Result struct {
	Path string
	// Entry is the history entry chosen, if the reference named one.
	Entry       history.Entry
	FromHistory bool
	// Others lists pattern matches that were not chosen, most recent first.
	Others []history.Entry
}

// Matcher resolves references against a snapshot of the history.
type Matcher struct {
	entries     []history.Entry
	cwdIdentity string
	abs         Canonicalizer
}

// New creates a matcher over entries (oldest first). cwdIdentity is the
// identity of the current directory, or empty if unknown.
func New(entries []history.Entry, cwdIdentity string, abs Canonicalizer) *Matcher {
	return &Matcher{entries: entries, cwdIdentity: cwdIdentity, abs: abs}
}

// Resolve maps ref to a directory. Errors are *Error values.
func (m *Matcher) Resolve(ref string) (Result, error) {
	switch {
	case isAllDashes(ref):
		return m.byRecency(len(ref), strconv.Itoa(len(ref)))
	case len(ref) > 1 && ref[0] == '-' && isDigits(ref[1:]):
		n, err := strconv.Atoi(ref[1:])
		if err != nil {
			return Result{}, &Error{Kind: NoEntry, Ref: ref, N: ref[1:]}
		}
		return m.byRecency(n, strconv.Itoa(n))
	case isDigits(ref):
		return m.byNumber(ref)
	}

	if p, ok := ParsePattern(ref); ok {
		return m.byPattern(ref, p)
	}
	return m.byPath(ref)
}

// byRecency returns the entry n places before the most recent one.
func (m *Matcher) byRecency(n int, label string) (Result, error) {
	idx := len(m.entries) - n - 1
	if n < 0 || idx < 0 || idx >= len(m.entries) {
		return Result{}, &Error{Kind: NoEntry, N: label}
	}
	e := m.entries[idx]
	return Result{Path: e.Path, Entry: e, FromHistory: true}, nil
}

func (m *Matcher) byNumber(ref string) (Result, error) {
	n, err := strconv.Atoi(ref)
	if err == nil {
		for _, e := range m.entries {
			if e.ID == n {
				return Result{Path: e.Path, Entry: e, FromHistory: true}, nil
			}
		}
		ref = strconv.Itoa(n)
	}
	return Result{}, &Error{Kind: NoNumber, Ref: ref, N: ref}
}

func (m *Matcher) byPattern(ref string, p Pattern) (Result, error) {
	var matches []history.Entry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if p.Match(m.entries[i].Path) {
			matches = append(matches, m.entries[i])
		}
	}
	if len(matches) == 0 {
		return Result{}, &Error{Kind: NoMatch, Ref: ref}
	}

	// Prefer somewhere other than where we already are
	if len(matches) > 1 && m.cwdIdentity != "" && matches[0].Identity == m.cwdIdentity {
		matches[0], matches[1] = matches[1], matches[0]
	}

	chosen := matches[0]
	return Result{
		Path:        chosen.Path,
		Entry:       chosen,
		FromHistory: true,
		Others:      matches[1:],
	}, nil
}

func (m *Matcher) byPath(ref string) (Result, error) {
	fi, err := os.Stat(ref)
	if err != nil || !fi.IsDir() {
		return Result{}, &Error{Kind: NoDirectory, Ref: ref}
	}
	abs, err := m.abs.Abs(ref)
	if err != nil {
		return Result{}, &Error{Kind: NoDirectory, Ref: ref}
	}
	return Result{Path: abs}, nil
}

func isAllDashes(s string) bool {
	return s != "" && strings.Trim(s, "-") == ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
