package match

import "fmt"

// ErrorKind classifies why a reference could not be resolved.
type ErrorKind int

const (
	// NoEntry: a relative index (-N or dashes) is out of range.
	NoEntry ErrorKind = iota
	// NoNumber: no entry carries the requested directory number.
	NoNumber
	// NoMatch: a pattern matched nothing.
	NoMatch
	// NoDirectory: a literal path is not an existing directory.
	NoDirectory
)

// Error is returned when a reference cannot be resolved.
type Error struct {
	Kind ErrorKind
	Ref  string
	N    string // index or number as understood, for NoEntry and NoNumber
}

func (e *Error) Error() string {
	switch e.Kind {
	case NoEntry:
		return fmt.Sprintf("No history entry %s", e.N)
	case NoNumber:
		return fmt.Sprintf("No directory number %s in history", e.N)
	case NoMatch:
		return fmt.Sprintf("No match: %s", e.Ref)
	default:
		return fmt.Sprintf("No such directory: %s", e.Ref)
	}
}
