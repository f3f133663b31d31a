// Package match resolves user references against the directory history.
//
// A reference takes one of these forms, tried in order:
//
//	-, --, ---     the Nth most recent entry before the current directory
//	-N             same, counted numerically
//	N              the entry whose directory number is N
//	%suffix        most recent entry whose path ends with suffix
//	%text%         most recent entry whose path contains text
//	path           an existing directory, made absolute
//
// Pattern matching is case-insensitive. When the most recent pattern match
// is the current directory and other matches exist, the next one is chosen
// instead. Ties are always broken by recency.
package match
