// Package engine is a backtracking, rule based parser for character input.
//
// A grammar is written as a set of rules: functions that try to match the
// input at the current position. The combinators in this package apply rules
// so that a rule which does not match leaves the parser exactly where it was,
// including any contextual flags the rule changed. Grammar packages typically
// embed *Parser and write their rules as methods.
package engine

import (
	"fmt"

	"github.com/lucidbard/ink/errors"
)

// Rule tries to match the input at the current position. It returns the
// parsed value and true on a match (the value may be nil), or nil and false
// when the input does not match.
type Rule func() (any, bool)

// SuccessHook is called after every rule applied through ParseRule matches,
// with the states at the start and end of the match.
type SuccessHook func(result any, start, end State)

// ErrorHandler receives the diagnostics raised by rules.
type ErrorHandler func(d errors.Diagnostic)

// DefaultMaxDepth is the default maximum nesting of rule applications.
const DefaultMaxDepth = 500

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithErrorHandler routes diagnostics to h.
func WithErrorHandler(h ErrorHandler) Option {
	return func(p *Parser) {
		p.onError = h
	}
}

// WithSuccessHook installs the hook run after every successful rule.
func WithSuccessHook(h SuccessHook) Option {
	return func(p *Parser) {
		p.onSuccess = h
	}
}

// WithMaxDepth sets the maximum nesting of rule applications.
// This prevents stack exhaustion on deeply nested input.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// Parser holds the input and the cursor for one source text.
type Parser struct {
	input []rune
	state State

	depth    int
	maxDepth int

	onError   ErrorHandler
	onSuccess SuccessHook

	hadError   bool
	hadWarning bool

	// aborted is set once a fatal error has been reported; every rule fails
	// from then on.
	aborted bool
}

// New returns a Parser positioned at the start of input.
func New(input string, options ...Option) *Parser {
	p := &Parser{
		input:    []rune(input),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.onError == nil {
		console := errors.NewConsoleSink(nil)
		p.onError = console.Report
	}
	return p
}

// Snapshot returns the current state.
func (p *Parser) Snapshot() State {
	return p.state
}

// Restore resets the parser to a state returned by Snapshot.
func (p *Parser) Restore(s State) {
	p.state = s
}

// Offset returns the current character offset.
func (p *Parser) Offset() int {
	return p.state.Offset
}

// LineIndex returns the zero-based line of the current position.
func (p *Parser) LineIndex() int {
	return p.state.Line
}

// Remaining returns the number of characters left to parse.
func (p *Parser) Remaining() int {
	return len(p.input) - p.state.Offset
}

// AtEnd reports whether all input has been consumed.
func (p *Parser) AtEnd() bool {
	return p.state.Offset >= len(p.input)
}

// Input returns the full input text.
func (p *Parser) Input() string {
	return string(p.input)
}

// Advance moves the cursor forward n characters, counting every '\n'
// crossed. A "\r\n" pair counts as one line terminator.
func (p *Parser) Advance(n int) {
	end := p.state.Offset + n
	if end > len(p.input) {
		end = len(p.input)
	}
	for i := p.state.Offset; i < end; i++ {
		if p.input[i] == '\n' {
			p.state.Line++
		}
	}
	p.state.Offset = end
}

// Flag reports whether flag is currently set.
func (p *Parser) Flag(flag Flags) bool {
	return p.state.Flags.Has(flag)
}

// SetFlag sets or clears flag. Prefer WithFlag, which scopes the change.
func (p *Parser) SetFlag(flag Flags, on bool) {
	p.state.Flags = p.state.Flags.With(flag, on)
}

// ParseRule applies rule. If the rule does not match, the parser is
// restored to the state it was in before the call. If it matches, the
// success hook runs with the states at the start and end of the match.
func (p *Parser) ParseRule(rule Rule) (any, bool) {
	if p.aborted {
		return nil, false
	}
	if p.depth >= p.maxDepth {
		p.Fail(errors.E1009, "maximum nesting depth exceeded")
		return nil, false
	}
	start := p.state
	p.depth++
	result, ok := rule()
	p.depth--
	if !ok || p.aborted {
		p.state = start
		return nil, false
	}
	if p.onSuccess != nil {
		p.onSuccess(result, start, p.state)
	}
	return result, true
}

// Fail reports a fatal error at the current position and aborts the parse.
// Only the first fatal error of a parse is reported.
func (p *Parser) Fail(code errors.ErrorCode, format string, args ...any) {
	p.FailAt(p.state, code, nil, format, args...)
}

// FailCause is like Fail but records the error that caused the failure.
func (p *Parser) FailCause(code errors.ErrorCode, cause error, format string, args ...any) {
	p.FailAt(p.state, code, cause, format, args...)
}

// FailAt reports a fatal error at a position other than the cursor, such
// as a snapshot taken where a construct began.
func (p *Parser) FailAt(at State, code errors.ErrorCode, cause error, format string, args ...any) {
	if p.aborted {
		return
	}
	p.hadError = true
	p.aborted = true
	p.onError(errors.Diagnostic{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Severity: errors.SeverityError,
		Offset:   at.Offset,
		Line:     at.Line,
		Cause:    cause,
	})
}

// Warn reports a warning at the current position. Warnings do not affect
// whether the parse succeeds.
func (p *Parser) Warn(code errors.ErrorCode, format string, args ...any) {
	if p.aborted {
		return
	}
	p.hadWarning = true
	p.onError(errors.Diagnostic{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Severity: errors.SeverityWarning,
		Offset:   p.state.Offset,
		Line:     p.state.Line,
	})
}

// Abort stops the parse without reporting anything. It is used when a
// failure has already been reported elsewhere, for example by the parser
// of an included file.
func (p *Parser) Abort() {
	p.hadError = true
	p.aborted = true
}

// Aborted reports whether a fatal error stopped the parse.
func (p *Parser) Aborted() bool {
	return p.aborted
}

// HadError reports whether a fatal error was reported.
func (p *Parser) HadError() bool {
	return p.hadError
}

// HadWarning reports whether any warning was reported.
func (p *Parser) HadWarning() bool {
	return p.hadWarning
}
