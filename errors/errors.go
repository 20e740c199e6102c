// Package errors defines diagnostics, the typed errors a failed parse
// produces, and the sinks that diagnostics are routed to.
package errors

import (
	"fmt"
)

// Severity distinguishes fatal diagnostics from warnings.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// String returns the label used when a diagnostic is formatted.
func (s Severity) String() string {
	if s == SeverityWarning {
		return "WARNING"
	}
	return "ERROR"
}

// Diagnostic is a single message raised while parsing. It is not retained in
// the AST; it is handed to a Sink and then discarded.
type Diagnostic struct {
	Code     ErrorCode
	Message  string
	Severity Severity
	// Offset is the character offset into the preprocessed source.
	Offset int
	// Line is the zero-based line index.
	Line int
	// Filename is empty when the source has no name.
	Filename string
	// Cause is the underlying error for diagnostics raised by a failed
	// collaborator, such as a file that could not be read.
	Cause error
}

// IsWarning reports whether the diagnostic is non-fatal.
func (d Diagnostic) IsWarning() bool {
	return d.Severity == SeverityWarning
}

// LineNumber returns the 1-based line number.
func (d Diagnostic) LineNumber() int {
	return d.Line + 1
}

// String formats the diagnostic as
// "ERROR: 'file.ink' line 3: message", omitting the filename when absent.
func (d Diagnostic) String() string {
	if d.Filename != "" {
		return fmt.Sprintf("%s: '%s' line %d: %s", d.Severity, d.Filename, d.LineNumber(), d.Message)
	}
	return fmt.Sprintf("%s: line %d: %s", d.Severity, d.LineNumber(), d.Message)
}

// ToFormatted converts the diagnostic to a FormattedError for display.
// sourceLine may be empty.
func (d Diagnostic) ToFormatted(sourceLine string) *FormattedError {
	kind := "error"
	if d.IsWarning() {
		kind = "warning"
	}
	fe := &FormattedError{
		Code:     d.Code,
		Kind:     kind,
		Message:  d.Message,
		Filename: d.Filename,
		Line:     d.LineNumber(),
	}
	if sourceLine != "" {
		fe.SourceLines = []SourceLineEntry{
			{Number: d.LineNumber(), Text: sourceLine, IsMain: true},
		}
	}
	return fe
}

// SyntaxError is raised when a rule required at the current position did not
// match.
type SyntaxError struct {
	Diagnostic
}

func (e *SyntaxError) Error() string {
	return e.Diagnostic.String()
}

func (e *SyntaxError) Unwrap() error {
	return e.Diagnostic.Cause
}

// IncludeCycleError is raised when a file includes a file that is already
// being parsed in the same include tree.
type IncludeCycleError struct {
	Diagnostic
}

func (e *IncludeCycleError) Error() string {
	return e.Diagnostic.String()
}

func (e *IncludeCycleError) Unwrap() error {
	return e.Diagnostic.Cause
}

// FileError is raised when an included file could not be resolved or read.
// The diagnostic's Cause holds the underlying I/O error when one is known.
type FileError struct {
	Diagnostic
}

func (e *FileError) Error() string {
	return e.Diagnostic.String()
}

func (e *FileError) Unwrap() error {
	return e.Diagnostic.Cause
}

// FromDiagnostic returns the typed error matching the diagnostic's code.
// Warnings are not errors and return nil.
func FromDiagnostic(d Diagnostic) error {
	if d.IsWarning() {
		return nil
	}
	switch d.Code {
	case E1011:
		return &IncludeCycleError{Diagnostic: d}
	case E1013:
		return &FileError{Diagnostic: d}
	default:
		return &SyntaxError{Diagnostic: d}
	}
}
