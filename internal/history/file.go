package history

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/raphi011/cdh/internal/storage"
)

// The history file holds one entry per line, oldest first:
//
//	<id> TAB <identity> TAB <path>
//
// Lines written by older versions carry only <id> TAB <path>; their
// identity is resolved while loading.

// Load replaces the store's contents with the entries in file.
// A missing file leaves the store empty. Malformed lines are reported and
// skipped. The store is marked unchanged afterwards.
func (s *Store) Load(file string) error {
	data, ok, err := storage.ReadOptional(file)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	s.entries = nil
	if ok {
		if err := s.Parse(bytes.NewReader(data), file); err != nil {
			return fmt.Errorf("read history: %w", err)
		}
	}
	s.changed = false
	return nil
}

// Parse replays every line of r through Put. name labels diagnostics.
func (s *Store) Parse(r io.Reader, name string) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		e, legacy, err := parseLine(line)
		if err != nil {
			s.log.Warnf("%s:%d: %v", name, lineNo, err)
			continue
		}
		if legacy {
			token, ok := s.resolver.Resolve(e.Path)
			if !ok {
				continue
			}
			e.Identity = token
		}
		s.Put(e)
	}
	return scanner.Err()
}

func parseLine(line string) (e Entry, legacy bool, err error) {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) < 2 {
		return Entry{}, false, fmt.Errorf("malformed history line %q", line)
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil || id < 1 {
		return Entry{}, false, fmt.Errorf("invalid directory number %q", fields[0])
	}

	if len(fields) == 2 {
		if fields[1] == "" {
			return Entry{}, false, fmt.Errorf("empty path for directory number %d", id)
		}
		return Entry{ID: id, Path: fields[1]}, true, nil
	}

	if fields[1] == "" || fields[2] == "" {
		return Entry{}, false, fmt.Errorf("malformed history line %q", line)
	}
	return Entry{ID: id, Identity: fields[1], Path: fields[2]}, false, nil
}

// Marshal encodes the store in file order.
func (s *Store) Marshal() []byte {
	var b bytes.Buffer
	for _, e := range s.entries {
		fmt.Fprintf(&b, "%d\t%s\t%s\n", e.ID, e.Identity, e.Path)
	}
	return b.Bytes()
}

// Save atomically writes the store to file.
func (s *Store) Save(file string) error {
	if err := storage.WriteAtomic(file, s.Marshal()); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

// SaveIfChanged writes the store only if it was mutated.
// Returns whether a write happened.
func (s *Store) SaveIfChanged(file string) (bool, error) {
	if !s.changed {
		return false, nil
	}
	if err := s.Save(file); err != nil {
		return false, err
	}
	s.changed = false
	return true, nil
}
