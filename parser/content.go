package parser

import (
	"strings"

	"github.com/lucidbard/ink/ast"
	"github.com/lucidbard/ink/errors"
)

// Knots and stitches

func (p *Parser) knotHeaderStart() (any, bool) {
	_, ok := p.ParseString("==")
	return nil, ok
}

func (p *Parser) stitchHeaderStart() (any, bool) {
	_, ok := p.ParseString("=")
	return nil, ok
}

// knotDefinition parses "== name ==" followed by the knot's content. The
// trailing equals signs are optional.
func (p *Parser) knotDefinition() (any, bool) {
	eq, ok := p.ParseCharactersFromString("=")
	if !ok || len(eq) < 2 {
		return nil, false
	}
	name, ok := p.headerName("knot name")
	if !ok {
		return nil, false
	}
	content := p.statementsAtLevel(Knot)
	if p.Aborted() {
		return nil, false
	}
	return ast.NewKnot(name, content), true
}

// stitchDefinition parses "= name" followed by the stitch's content.
func (p *Parser) stitchDefinition() (any, bool) {
	eq, ok := p.ParseCharactersFromString("=")
	if !ok || len(eq) != 1 {
		return nil, false
	}
	name, ok := p.headerName("stitch name")
	if !ok {
		return nil, false
	}
	content := p.statementsAtLevel(Stitch)
	if p.Aborted() {
		return nil, false
	}
	return ast.NewStitch(name, content), true
}

func (p *Parser) headerName(what string) (string, bool) {
	p.ParseInlineWhitespace()
	name, ok := p.Expect(p.identifier, what)
	if !ok {
		return "", false
	}
	p.ParseInlineWhitespace()
	p.ParseCharactersFromString("=")
	p.ParseInlineWhitespace()
	if _, ok := p.Expect(p.endOfLine, "end of line after "+what); !ok {
		return "", false
	}
	return name.(string), true
}

// Lines

// line parses one line of mixed text, inline logic and diverts. The line
// break is left for the statement driver.
func (p *Parser) line() (any, bool) {
	results, ok := p.OneOrMore(p.mixedContent)
	if !ok {
		return nil, false
	}
	return ast.NewLine(nodes(results)), true
}

func (p *Parser) mixedContent() (any, bool) {
	return p.OneOf(
		p.inlineLogic,
		p.multilineBlock,
		p.divert,
		p.text,
	)
}

func (p *Parser) text() (any, bool) {
	s, ok := p.ParseUntil(p.divertArrow, "-", "{}\n\r")
	if !ok {
		return nil, false
	}
	return ast.NewText(s), true
}

func (p *Parser) divertArrow() (any, bool) {
	_, ok := p.ParseString("->")
	return nil, ok
}

// divert parses "-> target", where target may be a dotted path such as
// knot.stitch.
func (p *Parser) divert() (any, bool) {
	if _, ok := p.divertArrow(); !ok {
		return nil, false
	}
	p.ParseInlineWhitespace()
	target, ok := p.Expect(p.divertTarget, "target for divert")
	if !ok {
		return nil, false
	}
	p.ParseInlineWhitespace()
	return ast.NewDivert(target.(string)), true
}

func (p *Parser) divertTarget() (any, bool) {
	first, ok := p.ParseIdentifier()
	if !ok {
		return nil, false
	}
	parts := []string{first}
	for _, r := range p.ZeroOrMore(p.dottedComponent) {
		parts = append(parts, r.(string))
	}
	return strings.Join(parts, "."), true
}

func (p *Parser) dottedComponent() (any, bool) {
	if _, ok := p.ParseString("."); !ok {
		return nil, false
	}
	name, ok := p.ParseIdentifier()
	if !ok {
		return nil, false
	}
	return name, true
}

// Logic

// inlineLogic parses "{ ... }" within a single line. A brace followed by the
// end of the line starts a multiline block instead.
func (p *Parser) inlineLogic() (any, bool) {
	if _, ok := p.ParseString("{"); !ok {
		return nil, false
	}
	p.ParseInlineWhitespace()
	if p.AtEndOfLine() {
		return nil, false
	}
	result, ok := p.WithFlag(FlagParsingString, true, p.inlineContent)
	if !ok {
		return nil, false
	}
	if _, ok := p.Expect(p.closingBrace, "closing '}' for inline logic"); !ok {
		return nil, false
	}
	return ast.NewInlineLogic(nodes(result.([]any))), true
}

func (p *Parser) inlineContent() (any, bool) {
	return p.ZeroOrMore(p.mixedContent), true
}

// multilineBlock parses a brace on a line of its own, the statements that
// follow it, and the closing brace. It is not available inside inline
// logic.
func (p *Parser) multilineBlock() (any, bool) {
	if p.Flag(FlagParsingString) {
		return nil, false
	}
	if _, ok := p.ParseString("{"); !ok {
		return nil, false
	}
	p.ParseInlineWhitespace()
	if _, ok := p.ParseNewline(); !ok {
		return nil, false
	}
	content := p.statementsAtLevel(InnerBlock)
	if p.Aborted() {
		return nil, false
	}
	p.skipWhitespace()
	if _, ok := p.ExpectCode(errors.E1002, p.closingBrace, "closing '}' for block"); !ok {
		return nil, false
	}
	return ast.NewBlock(content), true
}

// Author warnings

// authorWarning parses "TODO: message". The message is reported as a
// warning and no node is produced.
func (p *Parser) authorWarning() (any, bool) {
	if _, ok := p.ParseString("TODO"); !ok {
		return nil, false
	}
	p.ParseInlineWhitespace()
	if _, ok := p.ParseString(":"); !ok {
		return nil, false
	}
	p.ParseInlineWhitespace()
	message := p.LineRemainder()
	p.Advance(len([]rune(message)))
	p.Warn(errors.W0001, "TODO: %s", strings.TrimSpace(message))
	return nil, true
}
