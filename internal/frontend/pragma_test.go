package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kschwaiger/yantra/internal/grammar"
)

func Test_parsePragma_encodingSetsGrammarField(t *testing.T) {
	src := `
%encoding ascii;
%start start;
A := "a" ;
start(start) := A ;
`
	g, err := Parse(src, "enc.yantra")
	require.NoError(t, err)
	assert.Equal(t, grammar.EncodingASCII, g.Encoding)
}

func Test_parsePragma_encodingRejectsUnknownValue(t *testing.T) {
	_, err := Parse("%encoding latin1;\n%start s;\n", "badenc.yantra")
	assert.Error(t, err)
}

func Test_parsePragma_classMemberSplitsTypeAndName(t *testing.T) {
	src := `
%class_member int count;
%start start;
A := "a" ;
start(start) := A ;
`
	g, err := Parse(src, "member.yantra")
	require.NoError(t, err)
	require.Len(t, g.ClassMembers, 1)
	assert.Equal(t, "count", g.ClassMembers[0].Name)
	assert.Equal(t, "int", g.ClassMembers[0].Type)
}

func Test_parsePragma_booleanPragmasAcceptOnOff(t *testing.T) {
	src := `
%auto_resolve on;
%warn_resolve off;
%std_header off;
%start start;
A := "a" ;
start(start) := A ;
`
	g, err := Parse(src, "bools.yantra")
	require.NoError(t, err)
	assert.True(t, g.AutoResolve)
	assert.False(t, g.WarnResolve)
	assert.False(t, g.StdHeader)
}

func Test_parsePragma_fallbackMarksAlternatesUsed(t *testing.T) {
	src := `
%start start;
ID := [a-z]+ ;
KEYWORD_IF := "if" ;
%fallback ID KEYWORD_IF;
start(start) := ID ;
`
	g, err := Parse(src, "fallback.yantra")
	require.NoError(t, err)
	assert.Equal(t, []string{"KEYWORD_IF"}, g.Fallbacks["ID"])
}

func Test_readCodeBlock_tracksNestedBraces(t *testing.T) {
	src := `
%prologue %{ if x { %{ nested %} } %};
%start start;
A := "a" ;
start(start) := A ;
`
	g, err := Parse(src, "nested.yantra")
	require.NoError(t, err)
	assert.Contains(t, g.Prologue, "nested")
}
