package engine

import (
	"strconv"
	"strings"
	"unicode"
)

// Primitive matchers. Each either consumes the text it matched or leaves
// the cursor untouched, so they can be called directly from rule bodies.

// PeekChar returns the character at the cursor, or 0 at the end of input.
func (p *Parser) PeekChar() rune {
	if p.AtEnd() {
		return 0
	}
	return p.input[p.state.Offset]
}

// ParseString matches s exactly.
func (p *Parser) ParseString(s string) (string, bool) {
	want := []rune(s)
	if len(want) > p.Remaining() {
		return "", false
	}
	for i, r := range want {
		if p.input[p.state.Offset+i] != r {
			return "", false
		}
	}
	p.Advance(len(want))
	return s, true
}

// ParseSingleCharacter consumes one character.
func (p *Parser) ParseSingleCharacter() (rune, bool) {
	if p.AtEnd() {
		return 0, false
	}
	r := p.input[p.state.Offset]
	p.Advance(1)
	return r, true
}

// ParseCharactersFromString consumes the longest run of characters that
// appear in chars. It fails if the run is empty.
func (p *Parser) ParseCharactersFromString(chars string) (string, bool) {
	return p.parseWhile(func(r rune) bool { return strings.ContainsRune(chars, r) })
}

// ParseUntilCharactersFromString consumes characters up to, but not
// including, the first character that appears in chars. It fails if nothing
// was consumed.
func (p *Parser) ParseUntilCharactersFromString(chars string) (string, bool) {
	return p.parseWhile(func(r rune) bool { return !strings.ContainsRune(chars, r) })
}

func (p *Parser) parseWhile(accept func(rune) bool) (string, bool) {
	start := p.state.Offset
	end := start
	for end < len(p.input) && accept(p.input[end]) {
		end++
	}
	if end == start {
		return "", false
	}
	p.Advance(end - start)
	return string(p.input[start:end]), true
}

// ParseUntil consumes characters until stop matches or a character from
// endChars is reached. stop is only tried at characters from pauseChars,
// which keeps the scan cheap. stop itself is not consumed. It fails if
// nothing was consumed.
func (p *Parser) ParseUntil(stop Rule, pauseChars, endChars string) (string, bool) {
	start := p.state.Offset
	for !p.AtEnd() {
		r := p.PeekChar()
		if strings.ContainsRune(endChars, r) {
			break
		}
		if strings.ContainsRune(pauseChars, r) && stop != nil && p.Peek(stop) {
			break
		}
		p.Advance(1)
	}
	if p.state.Offset == start {
		return "", false
	}
	return string(p.input[start:p.state.Offset]), true
}

// ParseNewline matches "\n" or "\r\n".
func (p *Parser) ParseNewline() (string, bool) {
	if s, ok := p.ParseString("\n"); ok {
		return s, true
	}
	return p.ParseString("\r\n")
}

// AtEndOfLine reports whether the cursor is at a newline or the end of
// input.
func (p *Parser) AtEndOfLine() bool {
	switch p.PeekChar() {
	case 0, '\n':
		return true
	case '\r':
		return p.state.Offset+1 < len(p.input) && p.input[p.state.Offset+1] == '\n'
	}
	return false
}

// ParseInlineWhitespace consumes spaces and tabs.
func (p *Parser) ParseInlineWhitespace() (string, bool) {
	return p.ParseCharactersFromString(" \t")
}

// ParseMultilineWhitespace consumes any run of spaces, tabs and newlines
// that contains at least one newline.
func (p *Parser) ParseMultilineWhitespace() (string, bool) {
	start := p.state
	ws, _ := p.ParseCharactersFromString(" \t\r\n")
	if p.state.Line == start.Line {
		p.state = start
		return "", false
	}
	return ws, true
}

// ParseInt matches an optionally negative decimal integer.
func (p *Parser) ParseInt() (int, bool) {
	start := p.state
	_, negative := p.ParseString("-")
	digits, ok := p.ParseCharactersFromString("0123456789")
	if !ok {
		p.state = start
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		p.state = start
		return 0, false
	}
	if negative {
		n = -n
	}
	return n, true
}

// ParseIdentifier matches a letter or underscore followed by letters,
// digits and underscores.
func (p *Parser) ParseIdentifier() (string, bool) {
	r := p.PeekChar()
	if r != '_' && !unicode.IsLetter(r) {
		return "", false
	}
	return p.parseWhile(func(r rune) bool {
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	})
}

// LineRemainder returns the text from the cursor to the end of the line
// without consuming it.
func (p *Parser) LineRemainder() string {
	end := p.state.Offset
	for end < len(p.input) && p.input[end] != '\n' && p.input[end] != '\r' {
		end++
	}
	return string(p.input[p.state.Offset:end])
}
