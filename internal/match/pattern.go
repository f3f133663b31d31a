package match

import "strings"

// PatternKind selects how a pattern's needle is compared to a path.
type PatternKind int

const (
	// Suffix matches paths ending with the needle.
	Suffix PatternKind = iota
	// Substring matches paths containing the needle anywhere.
	Substring
)

func (k PatternKind) String() string {
	switch k {
	case Suffix:
		return "suffix"
	case Substring:
		return "substring"
	default:
		return "unknown"
	}
}

// Pattern is a parsed %reference.
type Pattern struct {
	Kind   PatternKind
	Needle string // lower-cased
}

// ParsePattern parses a reference starting with '%'.
// ok is false if ref is not a pattern reference.
func ParsePattern(ref string) (p Pattern, ok bool) {
	body, ok := strings.CutPrefix(ref, "%")
	if !ok {
		return Pattern{}, false
	}
	if inner, found := strings.CutSuffix(body, "%"); found {
		return Pattern{Kind: Substring, Needle: strings.ToLower(inner)}, true
	}
	return Pattern{Kind: Suffix, Needle: strings.ToLower(body)}, true
}

// Match reports whether path satisfies the pattern, ignoring case.
func (p Pattern) Match(path string) bool {
	path = strings.ToLower(path)
	switch p.Kind {
	case Substring:
		return strings.Contains(path, p.Needle)
	default:
		return strings.HasSuffix(path, p.Needle)
	}
}
