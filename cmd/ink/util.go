package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var red = color.New(color.FgRed).SprintFunc()

func fatal(msg interface{}, code int) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(s))
	os.Exit(code)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// useColor reports whether output written to w should be colored.
func useColor(v *viper.Viper, w io.Writer) bool {
	if v.GetBool("no-color") {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags(v *viper.Viper) {
	if v.GetBool("no-color") {
		color.NoColor = true
	}
}

func newLogger(v *viper.Viper, w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if v.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: !useColor(v, w), PartsExclude: []string{zerolog.TimestampFieldName}}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("Could not open file '%s': %w", path, err)
	}
	return string(data), nil
}

// timeOperation runs op and, in verbose mode, logs how long it took.
func timeOperation(v *viper.Viper, log zerolog.Logger, description string, op func()) {
	if !v.GetBool("verbose") {
		op()
		return
	}
	log.Info().Msgf("%s...", description)
	start := time.Now()
	op()
	log.Info().Msgf("%s took %s", description, formatDuration(time.Since(start)))
}

func formatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms > 500 {
		return fmt.Sprintf("%gs", float64(ms)/1000)
	}
	return fmt.Sprintf("%dms", ms)
}

// marshalJSON encodes value for display. Colored output is always indented.
func marshalJSON(value any, indent, colored bool) ([]byte, error) {
	if colored {
		return prettyjson.Marshal(value)
	}
	if indent {
		return json.MarshalIndent(value, "", "  ")
	}
	return json.Marshal(value)
}
