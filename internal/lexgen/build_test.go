package lexgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kschwaiger/yantra/internal/frontend"
)

const lexGrammar = `
%start start;

IF := "if" ;
ID := [a-zA-Z_][a-zA-Z0-9_]* ;
NUM := \d+ ;

start(start) := ID ;
start(start) := IF ;
start(start) := NUM ;
`

func Test_Build_claimsAcceptStatesForEveryToken(t *testing.T) {
	g, err := frontend.Parse(lexGrammar, "lex.yantra")
	require.NoError(t, err)
	require.NoError(t, Build(g))

	mode := g.Mode("default")
	require.NotNil(t, mode)

	var accepting int
	for _, st := range g.States {
		if st == nil || st.ModeName != "default" {
			continue
		}
		if st.MatchedRegex != nil {
			accepting++
		}
	}
	// IF, ID, and NUM each claim at least one accept state.
	assert.GreaterOrEqual(t, accepting, 3)
}

func Test_Build_earlierDeclaredTokenWinsAcceptTie(t *testing.T) {
	// IF and ID have the same pattern, so both regexes' paths converge on
	// one accept state; since IF is declared first it has the lower
	// (higher-priority) precedence and claims that state.
	const tieGrammar = `
%start start;

IF := if ;
ID := if ;

start(start) := ID ;
start(start) := IF ;
`
	g, err := frontend.Parse(tieGrammar, "tie.yantra")
	require.NoError(t, err)
	require.NoError(t, Build(g))

	ifSet := g.RegexSet("IF")
	require.NotNil(t, ifSet)
	idSet := g.RegexSet("ID")
	require.NotNil(t, idSet)

	var claimedByIf, claimedByID bool
	for _, st := range g.States {
		if st != nil && st.MatchedRegex != nil {
			switch regexSetOf(g, st.MatchedRegex) {
			case ifSet:
				claimedByIf = true
			case idSet:
				claimedByID = true
			}
		}
	}
	assert.True(t, claimedByIf)
	assert.False(t, claimedByID)
}
