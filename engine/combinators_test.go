package engine

import (
	"testing"

	"github.com/lucidbard/ink/errors"
	"github.com/stretchr/testify/require"
)

func literal(p *Parser, s string) Rule {
	return func() (any, bool) {
		return p.ParseString(s)
	}
}

func TestSequence(t *testing.T) {
	p, _ := newTestParser("abc")
	results, ok := p.Sequence(literal(p, "a"), literal(p, "b"))
	require.True(t, ok)
	require.Equal(t, []any{"a", "b"}, results)
	require.Equal(t, 2, p.Offset())
}

func TestSequenceRollsBack(t *testing.T) {
	p, _ := newTestParser("ab\nx")
	before := p.Snapshot()
	setFlag := func() (any, bool) {
		p.SetFlag(flagA, true)
		return nil, true
	}
	results, ok := p.Sequence(literal(p, "ab\n"), setFlag, literal(p, "y"))
	require.False(t, ok)
	require.Nil(t, results)
	require.Equal(t, before, p.Snapshot())
}

func TestOneOfOrderedPrecedence(t *testing.T) {
	p, _ := newTestParser("===")
	v, ok := p.OneOf(literal(p, "=="), literal(p, "==="))
	require.True(t, ok)
	require.Equal(t, "==", v)

	p, _ = newTestParser("===")
	v, ok = p.OneOf(literal(p, "==="), literal(p, "=="))
	require.True(t, ok)
	require.Equal(t, "===", v)
}

func TestOneOfBacktracksBetweenAlternatives(t *testing.T) {
	p, _ := newTestParser("abd")
	abc := func() (any, bool) {
		res, ok := p.Sequence(literal(p, "a"), literal(p, "b"), literal(p, "c"))
		return res, ok
	}
	abd := func() (any, bool) {
		res, ok := p.Sequence(literal(p, "a"), literal(p, "b"), literal(p, "d"))
		return res, ok
	}
	v, ok := p.OneOf(abc, abd)
	require.True(t, ok)
	require.Equal(t, []any{"a", "b", "d"}, v)
	require.True(t, p.AtEnd())
}

func TestOneOfNoMatchLeavesCursor(t *testing.T) {
	p, c := newTestParser("xyz")
	p.Advance(1)
	before := p.Snapshot()
	_, ok := p.OneOf(literal(p, "a"), literal(p, "b"))
	require.False(t, ok)
	require.Equal(t, before, p.Snapshot())
	require.Empty(t, c.Diagnostics())
}

func TestOptional(t *testing.T) {
	p, _ := newTestParser("ab")
	require.Nil(t, p.Optional(literal(p, "x")))
	require.Equal(t, 0, p.Offset())
	require.Equal(t, "a", p.Optional(literal(p, "a")))
	require.Equal(t, 1, p.Offset())

	v, ok := p.Optionally(literal(p, "x"))()
	require.True(t, ok)
	require.Nil(t, v)
}

func TestZeroOrMore(t *testing.T) {
	p, _ := newTestParser("aaab")
	results := p.ZeroOrMore(literal(p, "a"))
	require.Equal(t, []any{"a", "a", "a"}, results)
	require.Equal(t, 3, p.Offset())

	results = p.ZeroOrMore(literal(p, "a"))
	require.Empty(t, results)
	require.Equal(t, 3, p.Offset())
}

func TestZeroOrMoreRestoresOnlyFinalAttempt(t *testing.T) {
	p, _ := newTestParser("ab ab a!")
	pair := func() (any, bool) {
		res, ok := p.Sequence(
			func() (any, bool) { return p.Optional(literal(p, " ")), true },
			literal(p, "a"),
			literal(p, "b"),
		)
		return res, ok
	}
	results := p.ZeroOrMore(pair)
	require.Len(t, results, 2)
	require.Equal(t, 5, p.Offset())
}

func TestZeroOrMoreStopsOnEmptyMatch(t *testing.T) {
	p, _ := newTestParser("abc")
	empty := func() (any, bool) { return "e", true }
	results := p.ZeroOrMore(empty)
	require.Equal(t, []any{"e"}, results)
}

func TestOneOrMore(t *testing.T) {
	p, _ := newTestParser("bb")
	_, ok := p.OneOrMore(literal(p, "a"))
	require.False(t, ok)
	require.Equal(t, 0, p.Offset())

	results, ok := p.OneOrMore(literal(p, "b"))
	require.True(t, ok)
	require.Len(t, results, 2)
}

func TestPeekNeverConsumes(t *testing.T) {
	p, _ := newTestParser("abc")
	require.True(t, p.Peek(literal(p, "ab")))
	require.Equal(t, 0, p.Offset())
	require.False(t, p.Peek(literal(p, "x")))
	require.Equal(t, 0, p.Offset())
}

func TestWithFlagScoping(t *testing.T) {
	p, _ := newTestParser("abc")
	var seen bool
	failing := func() (any, bool) {
		seen = p.Flag(flagA)
		p.Advance(2)
		return nil, false
	}
	before := p.Snapshot()
	_, ok := p.WithFlag(flagA, true, failing)
	require.False(t, ok)
	require.True(t, seen)
	require.Equal(t, before, p.Snapshot())

	_, ok = p.WithFlag(flagA, true, literal(p, "a"))
	require.True(t, ok)
	require.False(t, p.Flag(flagA))
	require.Equal(t, 1, p.Offset())
}

func TestWithFlagClearsAndRestores(t *testing.T) {
	p, _ := newTestParser("abc")
	p.SetFlag(flagB, true)
	var seen bool
	_, ok := p.WithFlag(flagB, false, func() (any, bool) {
		seen = p.Flag(flagB)
		return nil, true
	})
	require.True(t, ok)
	require.False(t, seen)
	require.True(t, p.Flag(flagB))
}

func TestRollbackAcrossCombinators(t *testing.T) {
	input := "ab\ncd\nef"
	p, _ := newTestParser(input)
	p.Advance(1)
	p.SetFlag(flagB, true)

	consumeAndFail := func() (any, bool) {
		p.Advance(4)
		p.SetFlag(flagA, true)
		p.SetFlag(flagB, false)
		return nil, false
	}
	rules := map[string]func(){
		"sequence": func() { p.Sequence(literal(p, "b"), consumeAndFail) },
		"oneOf":    func() { p.OneOf(consumeAndFail, consumeAndFail) },
		"optional": func() { p.Optional(consumeAndFail) },
		"zero":     func() { p.ZeroOrMore(consumeAndFail) },
		"one":      func() { p.OneOrMore(consumeAndFail) },
		"peek":     func() { p.Peek(literal(p, "b")) },
		"withFlag": func() { p.WithFlag(flagA, true, consumeAndFail) },
	}
	for name, apply := range rules {
		before := p.Snapshot()
		apply()
		require.Equal(t, before, p.Snapshot(), name)
	}
}

func TestInterleave(t *testing.T) {
	p, _ := newTestParser(" a a  a!")
	spaces := p.Optionally(func() (any, bool) {
		_, ok := p.ParseCharactersFromString(" ")
		return nil, ok
	})
	results, ok := p.Interleave(spaces, literal(p, "a"), nil)
	require.True(t, ok)
	require.Equal(t, []any{"a", "a", "a"}, results)
	require.Equal(t, 7, p.Offset())
}

func TestInterleaveStopsAtTerminator(t *testing.T) {
	p, _ := newTestParser("aa}aa")
	results, ok := p.Interleave(p.Optionally(literal(p, " ")), literal(p, "a"), literal(p, "}"))
	require.True(t, ok)
	require.Len(t, results, 2)
	require.Equal(t, '}', p.PeekChar())
}

func TestInterleaveFlattensLists(t *testing.T) {
	p, _ := newTestParser("ab")
	pair := func() (any, bool) {
		res, ok := p.Sequence(literal(p, "a"), literal(p, "b"))
		return res, ok
	}
	results, ok := p.Interleave(p.Optionally(literal(p, " ")), pair, nil)
	require.True(t, ok)
	require.Equal(t, []any{"a", "b"}, results)
}

func TestExpect(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"xyz\nmore", "Expected letter a but saw 'xyz'"},
		{"\nmore", "Expected letter a but saw end of line"},
		{"", "Expected letter a but saw end of file"},
	}
	for _, tt := range tests {
		p, c := newTestParser(tt.input)
		_, ok := p.Expect(literal(p, "a"), "letter a")
		require.False(t, ok)
		require.True(t, p.Aborted())
		errs := c.Errors()
		require.Len(t, errs, 1)
		require.Equal(t, errors.E1001, errs[0].Code)
		require.Equal(t, tt.message, errs[0].Message)
	}
}

func TestExpectMatch(t *testing.T) {
	p, c := newTestParser("a")
	v, ok := p.ExpectCode(errors.E1002, literal(p, "a"), "letter a")
	require.True(t, ok)
	require.Equal(t, "a", v)
	require.Empty(t, c.Diagnostics())
}

func TestAbortPropagatesThroughAlternatives(t *testing.T) {
	p, c := newTestParser("ab")
	required := func() (any, bool) {
		if _, ok := p.ParseString("a"); !ok {
			return nil, false
		}
		return p.Expect(literal(p, "x"), "x")
	}
	_, ok := p.OneOf(required, literal(p, "a"), literal(p, "ab"))
	require.False(t, ok)
	require.Equal(t, 0, p.Offset())
	require.Len(t, c.Errors(), 1)
}
