// Package parser builds the abstract syntax tree (AST) for an ink story.
//
// A parser is created by calling New() with the story source. The parser
// should then be used only once, by calling parser.Parse() to produce the
// AST. Stories that INCLUDE other files are parsed by sub-parsers that share
// the root parser's Session.
package parser

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lucidbard/ink/ast"
	"github.com/lucidbard/ink/engine"
	"github.com/lucidbard/ink/errors"
	"github.com/lucidbard/ink/include"
	"github.com/lucidbard/ink/preprocess"
)

// DefaultMaxDepth is the default maximum nesting of rule applications.
const DefaultMaxDepth = engine.DefaultMaxDepth

// Parse the provided input as ink source and return the AST. This is
// shorthand for creating a Parser with New and calling Parse on it.
//
// On failure the returned story is nil and the error is a
// *multierror.Error holding one typed error per fatal diagnostic.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Story, error) {
	return New(input, options...).Parse(ctx)
}

type config struct {
	filename    string
	sink        errors.Sink
	fileHandler include.FileHandler
	preprocess  func(string) string
	maxDepth    int
	logger      zerolog.Logger
	workingDir  string

	// localFiles is set when includes are read from the local file system
	// by the default handler.
	localFiles bool
}

// Option is a configuration function for a Parser.
type Option func(*config)

// WithFilename sets the name of the source, used in diagnostics, metadata
// and to register the root file for include cycle detection. With the
// default file handler the name is a path relative to the current working
// directory, not to the directory set by WithWorkingDir.
func WithFilename(filename string) Option {
	return func(c *config) {
		c.filename = filename
	}
}

// WithSink routes diagnostics to s. By default they are printed to stdout.
func WithSink(s errors.Sink) Option {
	return func(c *config) {
		c.sink = s
	}
}

// WithHandler routes formatted diagnostics to h.
func WithHandler(h errors.Handler) Option {
	return func(c *config) {
		c.sink = errors.HandlerSink(h)
	}
}

// WithFileHandler sets how INCLUDE statements are resolved and loaded.
func WithFileHandler(h include.FileHandler) Option {
	return func(c *config) {
		c.fileHandler = h
	}
}

// WithPreprocessor replaces the comment stripping applied to every source
// before it is parsed. A nil function parses the source unchanged.
func WithPreprocessor(fn func(string) string) Option {
	return func(c *config) {
		if fn == nil {
			fn = func(s string) string { return s }
		}
		c.preprocess = fn
	}
}

// WithMaxDepth sets the maximum nesting of rule applications.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithWorkingDir sets the directory INCLUDE paths are resolved against when
// no FileHandler is given.
func WithWorkingDir(dir string) Option {
	return func(c *config) {
		c.workingDir = dir
	}
}

func newConfig(options []Option) *config {
	c := &config{
		preprocess: preprocess.StripComments,
		maxDepth:   DefaultMaxDepth,
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	if c.sink == nil {
		c.sink = errors.NewConsoleSink(nil)
	}
	if c.fileHandler == nil {
		c.fileHandler = include.NewFileHandler(c.workingDir)
		c.localFiles = true
	}
	return c
}

// Parser parses one source file. It embeds the rule engine, so grammar
// rules are written as methods on Parser.
type Parser struct {
	*engine.Parser

	// the Context supplied in the Parse() call
	ctx context.Context

	cfg     *config
	session *Session

	// root is true for the parser that owns the session.
	root bool

	// The filename of the input
	filename string

	statementRules [levelCount][]engine.Rule
	breakingRules  [levelCount][]engine.Rule
}

// New returns a Parser for the given source.
func New(input string, options ...Option) *Parser {
	cfg := newConfig(options)
	session := NewSession(cfg.fileHandler, cfg.sink, cfg.logger)
	p := newParser(input, cfg.filename, cfg, session)
	p.root = true
	return p
}

func newParser(input, filename string, cfg *config, session *Session) *Parser {
	p := &Parser{
		ctx:      context.Background(),
		cfg:      cfg,
		session:  session,
		filename: filename,
	}
	p.Parser = engine.New(cfg.preprocess(input),
		engine.WithErrorHandler(p.onError),
		engine.WithSuccessHook(p.ruleDidSucceed),
		engine.WithMaxDepth(cfg.maxDepth),
	)
	p.generateStatementLevelRules()
	return p
}

// Session returns the compilation session shared by this parser and the
// parsers of every file it includes.
func (p *Parser) Session() *Session {
	return p.session
}

// Parse the story. On failure the story is nil and the error describes
// every fatal diagnostic raised in the include tree.
func (p *Parser) Parse(ctx context.Context) (*ast.Story, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	p.ctx = ctx
	log := p.session.Logger

	if p.root && p.filename != "" {
		if path, err := p.rootPath(); err == nil {
			if err := p.session.OpenFiles.Add(path); err == nil {
				defer p.session.OpenFiles.Remove(path)
			}
		} else {
			log.Debug().Err(err).Str("filename", p.filename).Msg("could not resolve root file")
		}
	}

	story, ok := p.parseStory()
	err := p.session.Err()

	log.Debug().
		Str("filename", p.filename).
		Bool("ok", ok).
		Int("warnings", len(p.session.Diagnostics.Warnings())).
		Int("errors", len(p.session.Diagnostics.Errors())).
		Msg("parse finished")

	if !ok || err != nil {
		if err == nil {
			err = fmt.Errorf("parse of %q failed", p.filename)
		}
		return nil, err
	}
	return story, nil
}

// rootPath returns the canonical path the root file is registered under.
// A root read from disk is named relative to the process, so it is not
// resolved against the include directory. Custom handlers define their own
// namespace and resolve the root like any other name.
func (p *Parser) rootPath() (string, error) {
	if p.cfg.localFiles {
		return include.Canonicalize(p.filename)
	}
	return p.session.FileHandler.ResolveInkFilename(p.filename)
}

// parseStory runs the top level statements to the end of input. It returns
// false if a fatal error was reported.
func (p *Parser) parseStory() (*ast.Story, bool) {
	result, ok := p.ParseRule(func() (any, bool) {
		content := p.statementsAtLevel(Top)
		p.skipWhitespace()
		if _, ok := p.Expect(p.endOfFile, "end of file"); !ok {
			return nil, false
		}
		return ast.NewStory(content), true
	})
	if !ok {
		return nil, false
	}
	return result.(*ast.Story), true
}

// onError receives every diagnostic raised by this parser's rules.
func (p *Parser) onError(d errors.Diagnostic) {
	d.Filename = p.filename
	p.session.Diagnostics.Report(d)
}

// ruleDidSucceed stamps the nodes produced by a rule with the lines the
// rule spanned. Nodes that already carry metadata from a nested rule keep
// it.
func (p *Parser) ruleDidSucceed(result any, start, end engine.State) {
	switch r := result.(type) {
	case ast.Node:
		p.stamp(r, start, end)
	case []ast.Node:
		for _, n := range r {
			p.stamp(n, start, end)
		}
	case []any:
		for _, item := range r {
			if n, ok := item.(ast.Node); ok {
				p.stamp(n, start, end)
			}
		}
	}
}

func (p *Parser) stamp(n ast.Node, start, end engine.State) {
	if n == nil || n.HasOwnDebugMetadata() {
		return
	}
	n.SetDebugMetadata(&ast.DebugMetadata{
		StartLine: start.LineNumber(),
		EndLine:   end.LineNumber(),
		Filename:  p.filename,
	})
}
