package parser

import (
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"

	"github.com/lucidbard/ink/errors"
	"github.com/lucidbard/ink/include"
)

// Session is the state shared by every parser in one include tree: the set
// of files currently open, where diagnostics go, and how included files are
// found. A Session must not be used from more than one goroutine.
type Session struct {
	// ID identifies the session in log output.
	ID uuid.UUID

	OpenFiles   *include.Registry
	Diagnostics *errors.Collector
	FileHandler include.FileHandler
	Logger      zerolog.Logger
}

// NewSession returns a session that forwards diagnostics to sink.
func NewSession(fileHandler include.FileHandler, sink errors.Sink, logger zerolog.Logger) *Session {
	id := uuid.Must(uuid.NewV4())
	return &Session{
		ID:          id,
		OpenFiles:   include.NewRegistry(),
		Diagnostics: errors.NewCollector(sink),
		FileHandler: fileHandler,
		Logger:      logger.With().Str("session", id.String()).Logger(),
	}
}

// Err returns every fatal diagnostic reported in the session as a
// *multierror.Error, or nil if there were none.
func (s *Session) Err() error {
	return s.Diagnostics.Err()
}
