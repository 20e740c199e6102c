// Package preprocess removes comments from story source before parsing.
//
// Comments are replaced rather than deleted: a line comment leaves its line
// empty and a block comment is replaced by the newlines it contained, so
// every remaining character keeps its original line number.
package preprocess

import (
	"strings"

	"github.com/lucidbard/ink/engine"
)

// StripComments returns input with "//" line comments and "/* */" block
// comments removed. The result has the same number of lines as input.
func StripComments(input string) string {
	e := &eliminator{}
	e.Parser = engine.New(input)
	return e.process()
}

// LineCount returns the number of physical lines in s. A trailing newline
// starts a final, empty line that is counted, matching the line a parser is
// on once it has consumed that newline: "Hello\n" has two lines.
func LineCount(s string) int {
	return strings.Count(s, "\n") + 1
}

type eliminator struct {
	*engine.Parser
}

func (e *eliminator) process() string {
	parts, _ := e.Interleave(
		e.Optionally(e.commentsAndNewlines),
		e.Optionally(e.mainText),
		nil,
	)
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part.(string))
	}
	return b.String()
}

// mainText consumes everything up to the next comment or newline.
func (e *eliminator) mainText() (any, bool) {
	s, ok := e.ParseUntil(e.commentOrNewlineStart, "/\r", "\n")
	if !ok {
		return nil, false
	}
	return s, true
}

func (e *eliminator) commentOrNewlineStart() (any, bool) {
	return e.OneOf(
		func() (any, bool) { return e.ParseString("//") },
		func() (any, bool) { return e.ParseString("/*") },
		func() (any, bool) { return e.ParseNewline() },
	)
}

// commentsAndNewlines returns the newlines that survive a run of newlines
// and comments.
func (e *eliminator) commentsAndNewlines() (any, bool) {
	parts, ok := e.OneOrMore(func() (any, bool) {
		return e.OneOf(
			func() (any, bool) { return e.ParseNewline() },
			e.endOfLineComment,
			e.blockComment,
		)
	})
	if !ok {
		return nil, false
	}
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part.(string))
	}
	return b.String(), true
}

func (e *eliminator) endOfLineComment() (any, bool) {
	if _, ok := e.ParseString("//"); !ok {
		return nil, false
	}
	e.ParseUntilCharactersFromString("\n")
	return "", true
}

func (e *eliminator) blockComment() (any, bool) {
	if _, ok := e.ParseString("/*"); !ok {
		return nil, false
	}
	startLine := e.LineIndex()
	closing := func() (any, bool) { return e.ParseString("*/") }
	e.ParseUntil(closing, "*", "")
	// An unterminated block comment runs to the end of the input.
	e.ParseString("*/")
	return strings.Repeat("\n", e.LineIndex()-startLine), true
}
