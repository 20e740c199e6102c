package engine

// Flags is a set of contextual parsing modes. Grammar packages declare their
// own named flags:
//
//	const (
//		FlagParsingString engine.Flags = 1 << iota
//	)
type Flags uint32

// Has reports whether every bit of flag is set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// With returns a copy of f with flag set or cleared.
func (f Flags) With(flag Flags, on bool) Flags {
	if on {
		return f | flag
	}
	return f &^ flag
}

// State is the cursor of a parser: the position in the input, the
// zero-based line index of that position, and the active flags. A State
// value is a snapshot; restoring it undoes everything that happened after
// it was taken.
type State struct {
	Offset int
	Line   int
	Flags  Flags
}

// LineNumber returns the 1-based line number of the state.
func (s State) LineNumber() int {
	return s.Line + 1
}
