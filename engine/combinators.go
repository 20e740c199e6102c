package engine

import (
	"github.com/lucidbard/ink/errors"
)

// Sequence applies rules in order. If any rule does not match, the parser is
// restored to where it was before the first rule and the sequence fails.
func (p *Parser) Sequence(rules ...Rule) ([]any, bool) {
	start := p.state
	results := make([]any, 0, len(rules))
	for _, rule := range rules {
		result, ok := p.ParseRule(rule)
		if !ok {
			p.state = start
			return nil, false
		}
		results = append(results, result)
	}
	return results, true
}

// OneOf tries each rule in order and returns the result of the first that
// matches. Earlier rules take precedence.
func (p *Parser) OneOf(rules ...Rule) (any, bool) {
	for _, rule := range rules {
		if result, ok := p.ParseRule(rule); ok {
			return result, true
		}
		if p.aborted {
			break
		}
	}
	return nil, false
}

// Optional applies rule and returns its result, or nil if it did not match.
func (p *Parser) Optional(rule Rule) any {
	result, _ := p.ParseRule(rule)
	return result
}

// Optionally wraps rule so that it always matches.
func (p *Parser) Optionally(rule Rule) Rule {
	return func() (any, bool) {
		return p.Optional(rule), true
	}
}

// ZeroOrMore applies rule until it stops matching and returns every result.
// Only the final, failed attempt is undone. A match that consumes no input
// ends the repetition.
func (p *Parser) ZeroOrMore(rule Rule) []any {
	var results []any
	for {
		before := p.state.Offset
		result, ok := p.ParseRule(rule)
		if !ok {
			return results
		}
		results = append(results, result)
		if p.state.Offset == before {
			return results
		}
	}
}

// OneOrMore is like ZeroOrMore but fails if rule does not match at least
// once.
func (p *Parser) OneOrMore(rule Rule) ([]any, bool) {
	results := p.ZeroOrMore(rule)
	if len(results) == 0 {
		return nil, false
	}
	return results, true
}

// Peek reports whether rule matches at the current position without
// consuming any input.
func (p *Parser) Peek(rule Rule) bool {
	start := p.state
	_, ok := p.ParseRule(rule)
	p.state = start
	return ok
}

// WithFlag applies rule with flag set to on. The flag is returned to its
// previous value afterwards, whether or not the rule matched.
func (p *Parser) WithFlag(flag Flags, on bool, rule Rule) (any, bool) {
	prev := p.Flag(flag)
	p.SetFlag(flag, on)
	result, ok := p.ParseRule(rule)
	p.SetFlag(flag, prev)
	return result, ok
}

// Interleave alternates between ruleA and ruleB, starting and ending with
// ruleA, until ruleB fails, untilTerminator matches, or the input is
// exhausted. List results are flattened and nil results dropped. It fails
// only if the first application of ruleA does not match.
func (p *Parser) Interleave(ruleA, ruleB, untilTerminator Rule) ([]any, bool) {
	start := p.state
	var results []any

	first, ok := p.ParseRule(ruleA)
	if !ok {
		return nil, false
	}
	results = appendResult(results, first)

	for !p.AtEnd() {
		if untilTerminator != nil && p.Peek(untilTerminator) {
			break
		}
		before := p.state.Offset

		main, ok := p.ParseRule(ruleB)
		if !ok {
			break
		}
		results = appendResult(results, main)

		outer, ok := p.ParseRule(ruleA)
		if !ok {
			break
		}
		results = appendResult(results, outer)

		if p.state.Offset == before {
			break
		}
	}
	if p.aborted {
		p.state = start
		return nil, false
	}
	return results, true
}

func appendResult(results []any, result any) []any {
	switch r := result.(type) {
	case nil:
		return results
	case []any:
		for _, item := range r {
			results = appendResult(results, item)
		}
		return results
	default:
		return append(results, r)
	}
}

// Expect applies a rule that is required at this point. If it does not
// match, a syntax error "Expected <what> but saw <input>" is reported and
// the parse is aborted.
func (p *Parser) Expect(rule Rule, what string) (any, bool) {
	return p.ExpectCode(errors.E1001, rule, what)
}

// ExpectCode is like Expect but reports the error with the given code.
func (p *Parser) ExpectCode(code errors.ErrorCode, rule Rule, what string) (any, bool) {
	result, ok := p.ParseRule(rule)
	if ok || p.aborted {
		return result, ok
	}
	p.Fail(code, "Expected %s but saw %s", what, p.describeRemainder())
	return nil, false
}

func (p *Parser) describeRemainder() string {
	if p.AtEnd() {
		return "end of file"
	}
	remainder := p.LineRemainder()
	if remainder == "" {
		return "end of line"
	}
	return "'" + remainder + "'"
}
