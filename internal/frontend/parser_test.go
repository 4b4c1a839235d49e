package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kschwaiger/yantra/internal/grammar"
)

const miniGrammar = `
%namespace calc;
%class Calc;
%start expr;

NUM := \d+ ;
PLUS := "+" ;
LPAREN := "(" ;
RPAREN := ")" ;

%left PLUS;

expr(expr) := expr:l PLUS expr:r [PLUS] ;
expr(expr) := NUM:n ;
expr(expr) := LPAREN expr:e RPAREN ;
`

func Test_Parse_buildsExpectedStructure(t *testing.T) {
	g, err := Parse(miniGrammar, "mini.yantra")
	require.NoError(t, err)

	assert.Equal(t, "calc", g.Namespace)
	assert.Equal(t, "Calc", g.Class)
	assert.Equal(t, "expr", g.StartRule)
	assert.True(t, g.IsTerminal("NUM"))
	assert.True(t, g.IsNonTerminal("expr"))

	exprs := g.RuleSet("expr")
	require.NotNil(t, exprs)
	assert.Len(t, exprs.Rules, 3)

	// the first rule's PLUS is its anchor since PLUS is the first terminal.
	assert.Equal(t, 1, exprs.Rules[0].Anchor)

	// the start rule's last production ends with the $ marker appended by bind().
	last := exprs.Rules[len(exprs.Rules)-1]
	assert.Equal(t, grammar.EndOfInput, last.Nodes[len(last.Nodes)-1].Name)
}

func Test_Parse_rejectsUnknownPragma(t *testing.T) {
	_, err := Parse("%bogus foo;\nstart(start) := ;\n", "bad.yantra")
	require.Error(t, err)
}

func Test_Parse_rejectsUnusedToken(t *testing.T) {
	src := `
%start start;
USED := "a" ;
UNUSED := "b" ;
start(start) := USED ;
`
	_, err := Parse(src, "unused.yantra")
	require.Error(t, err)
}

func Test_Parse_allowsExplicitlyUnusedToken(t *testing.T) {
	src := `
%start start;
USED := "a" ;
UNUSED := "b" ; !
start(start) := USED ;
`
	_, err := Parse(src, "unused_ok.yantra")
	require.NoError(t, err)
}

func Test_ParseRegex_handlesClassesAndClosures(t *testing.T) {
	r := newReader(`[a-zA-Z_][a-zA-Z0-9_]*`, "t")
	tree, err := r.parseRegex()
	require.NoError(t, err)
	assert.Equal(t, grammar.AtomSequence, tree.Kind)
}
