package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kschwaiger/yantra/internal/grammar"
)

func Test_parseTokenDef_readsAllThreeOperators(t *testing.T) {
	src := `
%start start;
A := "a" ;
B :=> "b" ;
C :== "c" ;
start(start) := A ;
`
	g, err := Parse(src, "ops.yantra")
	require.NoError(t, err)

	assert.Equal(t, grammar.AssocRight, g.RegexSet("A").Associativity)
	assert.Equal(t, grammar.AssocLeft, g.RegexSet("B").Associativity)
	assert.Equal(t, grammar.AssocNone, g.RegexSet("C").Associativity)
}

func Test_parseTokenDef_rejectsRedeclarationWithDifferentAssociativity(t *testing.T) {
	src := `
%start start;
A := "a" ;
A :=> "a2" ;
start(start) := A ;
`
	_, err := Parse(src, "redeclare.yantra")
	assert.Error(t, err)
}

func Test_parseTokenDef_resetModeFlag(t *testing.T) {
	src := `
%start start;
A := "a" ; []
start(start) := A ;
`
	g, err := Parse(src, "resetmode.yantra")
	require.NoError(t, err)
	require.Len(t, g.RegexSet("A").Regexes, 1)
	assert.True(t, g.RegexSet("A").Regexes[0].ResetMode)
}
