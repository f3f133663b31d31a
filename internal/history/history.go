// Package history keeps the ordered, bounded list of visited directories.
//
// Entries are ordered oldest first; the last entry is the most recently
// visited directory. Each entry carries a small numeric id that users type
// to jump back, and a physical identity token used to deduplicate
// directories reached through different pathnames. Ids survive renames: a
// new pathname with a known identity keeps the old entry's id.
package history

import (
	"slices"
	"strings"

	"github.com/raphi011/cdh/internal/log"
)

// DefaultMaxHistory is the default capacity of a Store.
const DefaultMaxHistory = 100

// Entry is one remembered directory.
type Entry struct {
	ID       int    `json:"id"`
	Identity string `json:"identity"`
	Path     string `json:"path"`
}

// IdentityResolver maps a pathname to a physical identity token.
// ok is false if the path is unusable; the resolver reports why.
type IdentityResolver interface {
	Resolve(path string) (token string, ok bool)
}

// Store is an ordered, capacity-bounded sequence of entries.
// It is owned by a single invocation and is not safe for concurrent use.
type Store struct {
	entries  []Entry
	max      int
	resolver IdentityResolver
	log      *log.Logger
	changed  bool
}

// New creates an empty store. A capacity below 2 falls back to
// DefaultMaxHistory, since the store must hold both cwd and target.
func New(resolver IdentityResolver, l *log.Logger, capacity int) *Store {
	if capacity < 2 {
		capacity = DefaultMaxHistory
	}
	return &Store{resolver: resolver, log: l, max: capacity}
}

// Max returns the store's capacity.
func (s *Store) Max() int {
	return s.max
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries, oldest first.
func (s *Store) Entries() []Entry {
	return slices.Clone(s.entries)
}

// Last returns the most recent entry.
func (s *Store) Last() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// FindByID returns the first entry carrying id.
func (s *Store) FindByID(id int) (Entry, bool) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// FindByPath returns the entry recorded for path.
func (s *Store) FindByPath(path string) (Entry, bool) {
	for _, e := range s.entries {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}

// Changed reports whether the store was mutated since it was loaded.
func (s *Store) Changed() bool {
	return s.changed
}

// Add records a visit to path, resolving its identity.
// Returns false if nothing changed: the identity could not be resolved
// (the resolver has reported the cause) or path is already the most
// recent entry.
func (s *Store) Add(path string) bool {
	token, ok := s.resolver.Resolve(path)
	if !ok {
		s.log.Debug("not recording directory", "path", path)
		return false
	}
	return s.put(path, 0, token)
}

// AddWithIdentity records a visit to path using an already resolved
// identity token.
func (s *Store) AddWithIdentity(path, identity string) bool {
	return s.put(path, 0, identity)
}

// Put records an entry with an explicit id and identity, as persisted.
// A later Put sharing a pathname, identity or id with an earlier one
// replaces it.
func (s *Store) Put(e Entry) bool {
	return s.put(e.Path, e.ID, e.Identity)
}

// put is the single append-or-replace operation. An id of 0 means assign.
func (s *Store) put(path string, id int, identity string) bool {
	if strings.ContainsRune(path, '\n') {
		s.log.Warnf("%q: paths containing newlines cannot be recorded", path)
		return false
	}
	if last, ok := s.Last(); ok && last.Path == path && last.Identity == identity {
		return false
	}

	explicit := id > 0
	if !explicit {
		id = s.nextID(path, identity)
	}

	s.entries = slices.DeleteFunc(s.entries, func(e Entry) bool {
		return e.Path == path || e.Identity == identity || (explicit && e.ID == id)
	})

	if keep := s.max - 1; len(s.entries) > keep {
		s.entries = slices.Delete(s.entries, 0, len(s.entries)-keep)
	}

	s.entries = append(s.entries, Entry{ID: id, Identity: identity, Path: path})
	s.changed = true
	return true
}

// nextID returns the id of an existing entry sharing path or identity,
// or else the smallest id above every id scanned.
func (s *Store) nextID(path, identity string) int {
	candidate := 1
	for _, e := range s.entries {
		if e.Path == path || e.Identity == identity {
			return e.ID
		}
		if candidate <= e.ID {
			candidate = e.ID + 1
		}
	}
	return candidate
}
