package errors

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Code: E1001, Message: "Expected end of file but saw '}'", Line: 2}
	require.Equal(t, "ERROR: line 3: Expected end of file but saw '}'", d.String())

	d.Filename = "story.ink"
	require.Equal(t, "ERROR: 'story.ink' line 3: Expected end of file but saw '}'", d.String())

	w := Diagnostic{Code: W0001, Message: "TODO: later", Severity: SeverityWarning}
	require.True(t, w.IsWarning())
	require.Equal(t, "WARNING: line 1: TODO: later", w.String())
}

func TestErrorCodes(t *testing.T) {
	require.Equal(t, "unterminated block", E1002.Description())
	require.Equal(t, "unknown error", ErrorCode("E9999").Description())
	require.Equal(t, "parse", E1011.Category())
	require.Equal(t, "warning", W0001.Category())
	require.Equal(t, "unknown", ErrorCode("X").Category())
	require.Equal(t, "E1013", E1013.String())
}

func TestFromDiagnostic(t *testing.T) {
	require.Nil(t, FromDiagnostic(Diagnostic{Severity: SeverityWarning}))

	var syntaxErr *SyntaxError
	require.True(t, errors.As(FromDiagnostic(Diagnostic{Code: E1002}), &syntaxErr))

	var cycleErr *IncludeCycleError
	require.True(t, errors.As(FromDiagnostic(Diagnostic{Code: E1011}), &cycleErr))

	cause := &fs.PathError{Op: "open", Path: "/x.ink", Err: fs.ErrNotExist}
	err := FromDiagnostic(Diagnostic{Code: E1013, Message: "Failed to load: 'x.ink'", Cause: cause})
	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	require.True(t, errors.Is(err, fs.ErrNotExist))
	require.Same(t, cause, fileErr.Cause)
	require.Equal(t, "ERROR: line 1: Failed to load: 'x.ink'", err.Error())

	var bare *FileError
	require.True(t, errors.As(FromDiagnostic(Diagnostic{Code: E1013}), &bare))
	require.NoError(t, bare.Unwrap())
}

func TestCollector(t *testing.T) {
	var forwarded []Diagnostic
	c := NewCollector(SinkFunc(func(d Diagnostic) {
		forwarded = append(forwarded, d)
	}))
	require.NoError(t, c.Err())

	c.Report(Diagnostic{Code: W0001, Message: "TODO: a", Severity: SeverityWarning})
	require.NoError(t, c.Err())

	c.Report(Diagnostic{Code: E1011, Message: "cycle"})
	c.Report(Diagnostic{Code: E1001, Message: "unexpected"})

	require.Len(t, c.Diagnostics(), 3)
	require.Len(t, c.Warnings(), 1)
	require.Len(t, c.Errors(), 2)
	require.Equal(t, c.Diagnostics(), forwarded)

	err := c.Err()
	require.Error(t, err)
	var cycleErr *IncludeCycleError
	require.True(t, errors.As(err, &cycleErr))
	require.Contains(t, err.Error(), "2 errors occurred")
}

func TestHandlerSink(t *testing.T) {
	var messages []string
	var severities []Severity
	sink := HandlerSink(func(message string, severity Severity) {
		messages = append(messages, message)
		severities = append(severities, severity)
	})
	sink.Report(Diagnostic{Message: "oops", Line: 4, Filename: "a.ink"})
	sink.Report(Diagnostic{Message: "hmm", Severity: SeverityWarning})

	require.Equal(t, []string{"ERROR: 'a.ink' line 5: oops", "WARNING: line 1: hmm"}, messages)
	require.Equal(t, []Severity{SeverityError, SeverityWarning}, severities)
}

func TestConsoleSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf)
	sink.Report(Diagnostic{Message: "first"})
	sink.Report(Diagnostic{Message: "second", Severity: SeverityWarning, Line: 1})
	require.Equal(t, "ERROR: line 1: first\nWARNING: line 2: second\n", buf.String())
}

func TestFormatter(t *testing.T) {
	d := Diagnostic{
		Code:     E1002,
		Message:  "Expected closing '}' for block but saw end of file",
		Line:     2,
		Filename: "a.ink",
	}
	fe := d.ToFormatted("{")
	fe.Hint = "add a '}' on its own line"

	f := NewFormatter(false)
	expected := "error[E1002]: Expected closing '}' for block but saw end of file\n" +
		"  --> a.ink:3\n" +
		"   |\n" +
		" 3 | {\n" +
		"   = hint: add a '}' on its own line\n"
	require.Equal(t, expected, f.Format(fe))

	w := Diagnostic{Code: W0001, Message: "TODO: x", Severity: SeverityWarning}.ToFormatted("")
	require.Equal(t, "warning[W0001]: TODO: x\n  --> line 1\n", f.Format(w))

	multi := f.FormatMultiple([]*FormattedError{fe, w})
	require.Contains(t, multi, "found 2 diagnostics")
	require.Equal(t, "", f.FormatMultiple(nil))
}
