package errors

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
)

// Sink receives every diagnostic raised while parsing.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(d Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Handler is the callback form accepted from embedders. It receives the
// formatted message and its severity.
type Handler func(message string, severity Severity)

// HandlerSink returns a Sink that formats each diagnostic and forwards it
// to h.
func HandlerSink(h Handler) Sink {
	return SinkFunc(func(d Diagnostic) {
		h(d.String(), d.Severity)
	})
}

// ConsoleSink prints formatted diagnostics to a writer. It is the sink used
// when no other is configured.
type ConsoleSink struct {
	Out io.Writer
	// Color highlights the severity label.
	Color bool
}

// NewConsoleSink returns a ConsoleSink writing to w, or to stdout when w is
// nil.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleSink{Out: w}
}

func (s *ConsoleSink) Report(d Diagnostic) {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	msg := d.String()
	if s.Color {
		label := d.Severity.String() + ":"
		c := color.New(color.FgHiRed, color.Bold)
		if d.IsWarning() {
			c = color.New(color.FgHiYellow, color.Bold)
		}
		msg = c.Sprint(label) + msg[len(label):]
	}
	fmt.Fprintln(out, msg)
}

// Collector records diagnostics and optionally forwards them to Next.
// It is safe for concurrent use.
type Collector struct {
	Next Sink

	mu          sync.Mutex
	diagnostics []Diagnostic
}

// NewCollector returns a Collector forwarding to next, which may be nil.
func NewCollector(next Sink) *Collector {
	return &Collector{Next: next}
}

func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	c.diagnostics = append(c.diagnostics, d)
	c.mu.Unlock()
	if c.Next != nil {
		c.Next.Report(d)
	}
}

// Diagnostics returns every diagnostic in the order it was reported.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.diagnostics...)
}

// Errors returns the error-severity diagnostics.
func (c *Collector) Errors() []Diagnostic {
	return c.filter(SeverityError)
}

// Warnings returns the warning-severity diagnostics.
func (c *Collector) Warnings() []Diagnostic {
	return c.filter(SeverityWarning)
}

func (c *Collector) filter(sev Severity) []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Diagnostic
	for _, d := range c.diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// Err returns the collected errors as a single error, or nil if none were
// reported.
func (c *Collector) Err() error {
	var result *multierror.Error
	for _, d := range c.Errors() {
		result = multierror.Append(result, FromDiagnostic(d))
	}
	return result.ErrorOrNil()
}
