package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Atom_Matches(t *testing.T) {
	testCases := []struct {
		name   string
		atom   *Atom
		input  rune
		expect bool
	}{
		{name: "literal match", atom: NewLiteral('a'), input: 'a', expect: true},
		{name: "literal mismatch", atom: NewLiteral('a'), input: 'b', expect: false},
		{name: "wildcard matches any non-newline", atom: NewWildcard(), input: 'x', expect: true},
		{name: "wildcard rejects newline", atom: NewWildcard(), input: '\n', expect: false},
		{name: "class in range", atom: NewClass([]ClassRange{{Lo: '0', Hi: '9'}}, false), input: '5', expect: true},
		{name: "class out of range", atom: NewClass([]ClassRange{{Lo: '0', Hi: '9'}}, false), input: 'a', expect: false},
		{name: "negated class", atom: NewClass([]ClassRange{{Lo: '0', Hi: '9'}}, true), input: 'a', expect: true},
		{name: "escape class digit", atom: NewEscapeClass("d"), input: '7', expect: true},
		{name: "escape class not-digit", atom: NewEscapeClass("D"), input: '7', expect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.atom.Matches(tc.input))
		})
	}
}

func Test_Atom_IsSubsetOf(t *testing.T) {
	digit := NewClass([]ClassRange{{Lo: '0', Hi: '9'}}, false)
	wildcard := NewWildcard()
	letterOrDigit := NewClass([]ClassRange{{Lo: '0', Hi: '9'}, {Lo: 'a', Hi: 'z'}}, false)
	digitEscape := NewEscapeClass("d")

	assert.True(t, digit.IsSubsetOf(wildcard))
	assert.True(t, digit.IsSubsetOf(letterOrDigit))
	assert.False(t, letterOrDigit.IsSubsetOf(digit))
	assert.True(t, NewLiteral('7').IsSubsetOf(digitEscape))
	assert.False(t, digit.IsSubsetOf(digit))
}

func Test_Atom_Equal(t *testing.T) {
	a := NewSequence(NewLiteral('a'), NewClosure(NewLiteral('b'), 0, -1))
	b := NewSequence(NewLiteral('a'), NewClosure(NewLiteral('b'), 0, -1))
	c := NewSequence(NewLiteral('a'), NewClosure(NewLiteral('b'), 1, -1))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func Test_Atom_String_roundTrips(t *testing.T) {
	testCases := []struct {
		name   string
		atom   *Atom
		expect string
	}{
		{name: "literal", atom: NewLiteral('x'), expect: "x"},
		{name: "star closure", atom: NewClosure(NewLiteral('a'), 0, -1), expect: "a*"},
		{name: "plus closure", atom: NewClosure(NewLiteral('a'), 1, -1), expect: "a+"},
		{name: "optional closure", atom: NewClosure(NewLiteral('a'), 0, 1), expect: "a?"},
		{name: "counted closure", atom: NewClosure(NewLiteral('a'), 2, 4), expect: "a{2,4}"},
		{name: "class", atom: NewClass([]ClassRange{{Lo: 'a', Hi: 'z'}}, false), expect: "[a-z]"},
		{name: "negated class", atom: NewClass([]ClassRange{{Lo: 'a', Hi: 'z'}}, true), expect: "[^a-z]"},
		{name: "group", atom: NewGroup(NewLiteral('a'), true), expect: "(a)"},
		{name: "non-capturing group", atom: NewGroup(NewLiteral('a'), false), expect: "(a)!"},
		{name: "disjunction", atom: NewDisjunct(NewLiteral('a'), NewLiteral('b')), expect: "(a|b)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.atom.String())
		})
	}
}
