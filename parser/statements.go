package parser

import (
	"github.com/lucidbard/ink/ast"
	"github.com/lucidbard/ink/engine"
	"github.com/lucidbard/ink/errors"
)

// Contextual flags.
const (
	// FlagParsingString is set inside inline logic, where content may not
	// continue onto another line.
	FlagParsingString engine.Flags = 1 << iota
)

// StatementLevel selects which statements are legal. Each level allows
// everything the levels below it allow.
type StatementLevel int

const (
	InnerBlock StatementLevel = iota
	Stitch
	Knot
	Top

	levelCount = int(Top) + 1
)

func (l StatementLevel) String() string {
	switch l {
	case InnerBlock:
		return "InnerBlock"
	case Stitch:
		return "Stitch"
	case Knot:
		return "Knot"
	case Top:
		return "Top"
	}
	return "Unknown"
}

func (p *Parser) generateStatementLevelRules() {
	for i := 0; i < levelCount; i++ {
		level := StatementLevel(i)
		var rules []engine.Rule

		if level >= Top {
			rules = append(rules, p.includeStatement)
		} else {
			rules = append(rules, p.misplacedInclude)
		}
		if level >= Top {
			rules = append(rules, p.knotDefinition)
		}
		if level >= Knot {
			rules = append(rules, p.stitchDefinition)
		}
		rules = append(rules,
			p.authorWarning,
			p.multilineBlock,
			p.line,
		)
		p.statementRules[level] = rules

		// Rules that end the statements of a level and hand control back to
		// the enclosing construct.
		var breaking []engine.Rule
		if level <= Knot {
			breaking = append(breaking, p.knotHeaderStart)
		}
		if level <= Stitch {
			breaking = append(breaking, p.stitchHeaderStart)
		}
		if level <= InnerBlock {
			breaking = append(breaking, p.closingBrace)
		}
		p.breakingRules[level] = breaking
	}
}

// statementsAtLevel parses statements until none of the level's rules
// match, a breaking rule is reached, or the parse is aborted. Trailing
// whitespace after the last statement is left unconsumed.
func (p *Parser) statementsAtLevel(level StatementLevel) []ast.Node {
	results := p.ZeroOrMore(func() (any, bool) {
		return p.statementAtLevel(level)
	})
	return nodes(results)
}

func (p *Parser) statementAtLevel(level StatementLevel) (any, bool) {
	select {
	case <-p.ctx.Done():
		p.FailCause(errors.E1014, p.ctx.Err(), "parse cancelled: %v", p.ctx.Err())
		return nil, false
	default:
	}
	p.skipWhitespace()
	if p.AtEnd() {
		return nil, false
	}
	for _, rule := range p.breakingRules[level] {
		if p.Peek(rule) {
			return nil, false
		}
	}
	return p.OneOf(p.statementRules[level]...)
}

func (p *Parser) skipWhitespace() {
	p.ParseCharactersFromString(" \t\r\n")
}

func (p *Parser) endOfFile() (any, bool) {
	return nil, p.AtEnd()
}

func (p *Parser) endOfLine() (any, bool) {
	return nil, p.AtEndOfLine()
}

func (p *Parser) closingBrace() (any, bool) {
	_, ok := p.ParseString("}")
	return nil, ok
}

func (p *Parser) identifier() (any, bool) {
	name, ok := p.ParseIdentifier()
	if !ok {
		return nil, false
	}
	return name, true
}

// nodes flattens rule results into a node list, dropping statements that
// produced nothing.
func nodes(results []any) []ast.Node {
	var out []ast.Node
	for _, r := range results {
		switch v := r.(type) {
		case ast.Node:
			out = append(out, v)
		case []any:
			out = append(out, nodes(v)...)
		}
	}
	return out
}
