package parser

import (
	"strings"

	"github.com/lucidbard/ink/ast"
	"github.com/lucidbard/ink/errors"
)

// includeStatement parses "INCLUDE filename" and the file it names.
func (p *Parser) includeStatement() (any, bool) {
	if !p.includeKeyword() {
		return nil, false
	}
	name, ok := p.Expect(p.includeFilename, "filename for INCLUDE")
	if !ok {
		return nil, false
	}
	return p.parseIncludedFile(name.(string))
}

// misplacedInclude reports an INCLUDE below the top level.
func (p *Parser) misplacedInclude() (any, bool) {
	if !p.includeKeyword() {
		return nil, false
	}
	p.Fail(errors.E1012, "files can only be included at the top level, not inside a knot or block")
	return nil, false
}

func (p *Parser) includeKeyword() bool {
	if _, ok := p.ParseString("INCLUDE"); !ok {
		return false
	}
	_, ok := p.ParseInlineWhitespace()
	return ok
}

func (p *Parser) includeFilename() (any, bool) {
	name, ok := p.ParseUntilCharactersFromString("\r\n")
	if !ok {
		return nil, false
	}
	name = strings.TrimRight(name, " \t")
	if name == "" {
		return nil, false
	}
	return name, true
}

// parseIncludedFile resolves filename, parses it with a sub-parser sharing
// this parser's session, and returns its content. The resolved path is open
// for exactly the duration of the sub-parse, so a file that includes itself,
// directly or through others, is rejected while diamond shaped includes are
// allowed.
func (p *Parser) parseIncludedFile(filename string) (any, bool) {
	s := p.session
	path, err := s.FileHandler.ResolveInkFilename(filename)
	if err != nil {
		p.FailCause(errors.E1013, err, "Failed to resolve included file '%s': %v", filename, err)
		return nil, false
	}
	if err := s.OpenFiles.Add(path); err != nil {
		p.FailCause(errors.E1011, err, "Recursive INCLUDE detected: '%s'.", path)
		return nil, false
	}
	defer func() {
		s.OpenFiles.Remove(path)
		s.Logger.Debug().Str("path", path).Msg("include closed")
	}()
	s.Logger.Debug().Str("path", path).Str("from", p.filename).Msg("include opened")

	text, err := s.FileHandler.LoadInkFileContents(path)
	if err != nil {
		p.FailCause(errors.E1013, err, "Failed to load: '%s'", filename)
		return nil, false
	}

	sub := newParser(text, filename, p.cfg, s)
	sub.ctx = p.ctx
	story, ok := sub.parseStory()
	if !ok {
		// The sub-parser has already reported why.
		p.Abort()
		return nil, false
	}
	return ast.NewIncludedFile(filename, path, story.Content), true
}
