package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kschwaiger/yantra/internal/frontend"
	"github.com/kschwaiger/yantra/internal/grammar"
	"github.com/kschwaiger/yantra/internal/lalr"
	"github.com/kschwaiger/yantra/internal/lexgen"
)

const segGrammar = `
%namespace calc;
%class Calc;
%start expr;
%walkers eval;
%default_walker eval;

NUM := \d+ ;
PLUS := "+" ;

%left PLUS;

%function expr eval::Eval -> int;

expr(expr) := expr:l PLUS expr:r [PLUS]
	@eval::Eval %{ return w.Eval(n.L) + w.Eval(n.R) %}
;
expr(expr) := NUM:n
	@eval::Eval %{ v, _ := strconv.Atoi(n.N.Text); return v %}
;
`

const fallbackGrammar = `
%namespace kw;
%class Kw;
%start start;

ID := [a-zA-Z]+ ;
KEYWORD_IF := "if" ;

%fallback ID KEYWORD_IF;

start(start) := ID ;
`

func buildSegGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := frontend.Parse(segGrammar, "seg.yantra")
	require.NoError(t, err)
	require.NoError(t, lexgen.Build(g))
	lexgen.Optimize(g)
	require.NoError(t, lalr.Build(g))
	return g
}

func buildFallbackGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := frontend.Parse(fallbackGrammar, "fallback.yantra")
	require.NoError(t, err)
	require.NoError(t, lexgen.Build(g))
	lexgen.Optimize(g)
	require.NoError(t, lalr.Build(g))
	return g
}

func Test_astNodeDecls_emitsOneStructPerRuleSetWithBoundFields(t *testing.T) {
	g := buildSegGrammar(t)
	out := astNodeDecls(g, "Calc")
	assert.Contains(t, out, "type ExprNode struct")
	assert.Contains(t, out, "L *ExprNode")
	assert.Contains(t, out, "R *ExprNode")
	assert.Contains(t, out, "N Token")
}

func Test_astNodeDefns_emitsOneConstructorPerRule(t *testing.T) {
	g := buildSegGrammar(t)
	out := astNodeDefns(g, "Calc")
	exprs := g.RuleSet("expr")
	require.Len(t, exprs.Rules, 2)
	for _, r := range exprs.Rules {
		assert.Contains(t, out, "newExprNode")
		_ = r
	}
}

func Test_walkerDefns_resolvesDeclaredFunctionSignature(t *testing.T) {
	g := buildSegGrammar(t)
	dict := baseDict("calc", "Calc", g.StartRule, maxRepeatCount(g), "ExprNode")
	out := walkerDefns(g, "Calc", dict)
	assert.Contains(t, out, "type EvalWalker struct")
	assert.Contains(t, out, "func (w *EvalWalker) Eval(n *ExprNode) int")
}

func Test_walkerDefns_splicesRoutedCodeblockBodyIntoMatchingCase(t *testing.T) {
	g := buildSegGrammar(t)
	dict := baseDict("calc", "Calc", g.StartRule, maxRepeatCount(g), "ExprNode")
	out := walkerDefns(g, "Calc", dict)

	assert.Contains(t, out, "switch n.RuleID {")
	assert.Contains(t, out, "case 1:")
	assert.Contains(t, out, "return w.Eval(n.L) + w.Eval(n.R)")
	assert.Contains(t, out, "case 2:")
	assert.Contains(t, out, "strconv.Atoi(n.N.Text)")
	assert.NotContains(t, out, `panic("not implemented")`)
}

func Test_walkerDefns_fallsBackToNotImplementedForUnroutedRule(t *testing.T) {
	g, err := frontend.Parse(`
%namespace calc;
%class Calc;
%start expr;
%walkers eval;
%default_walker eval;

NUM := \d+ ;

%function expr eval::Eval -> int;

expr(expr) := NUM:n ;
`, "unrouted.yantra")
	require.NoError(t, err)
	require.NoError(t, lexgen.Build(g))
	lexgen.Optimize(g)
	require.NoError(t, lalr.Build(g))

	dict := baseDict("calc", "Calc", g.StartRule, maxRepeatCount(g), "ExprNode")
	out := walkerDefns(g, "Calc", dict)
	assert.Contains(t, out, `panic("not implemented")`)
}

func Test_createASTNodesDefns_dispatchesByRuleSetAndID(t *testing.T) {
	g := buildSegGrammar(t)
	out := createASTNodesDefns(g, "Calc")
	assert.Contains(t, out, `case "expr":`)
	assert.Contains(t, out, "case 1:")
	assert.Contains(t, out, "case 2:")
}

func Test_parserTransitions_emitsOneRowPerItemSet(t *testing.T) {
	g := buildSegGrammar(t)
	out := parserTransitions(g)
	assert.Contains(t, out, "var parserTable = []map[string]parserAction{")
	assert.Contains(t, out, "actionShift")
}

func Test_parserTransitions_expandsFallbackTokensToPrimaryAction(t *testing.T) {
	g := buildFallbackGrammar(t)
	out := parserTransitions(g)
	assert.Contains(t, out, `"ID": {Kind: actionShift`)
	assert.Contains(t, out, `"KEYWORD_IF": {Kind: actionShift`)
}

func Test_expandFallbacks_doesNotOverrideAnExistingAlternateEntry(t *testing.T) {
	actions := map[string]grammar.Action{
		"ID":         {Kind: grammar.ActionShift, Target: 3},
		"KEYWORD_IF": {Kind: grammar.ActionShift, Target: 9},
	}
	fallbacks := map[string][]string{"ID": {"KEYWORD_IF"}}
	out := expandFallbacks(actions, fallbacks)
	assert.Equal(t, 9, out["KEYWORD_IF"].Target)
}

func Test_expandFallbacks_ignoresAlternateWhosePrimaryHasNoActionHere(t *testing.T) {
	actions := map[string]grammar.Action{}
	fallbacks := map[string][]string{"ID": {"KEYWORD_IF"}}
	out := expandFallbacks(actions, fallbacks)
	assert.NotContains(t, out, "KEYWORD_IF")
}

func Test_lexerStates_emitsOneRowPerState(t *testing.T) {
	g := buildSegGrammar(t)
	out := lexerStates(g)
	assert.Contains(t, out, "var lexerStateTable = [][]lexerTransition{")
}

func Test_exportName_capitalizesFirstRune(t *testing.T) {
	assert.Equal(t, "Expr", exportName("expr"))
	assert.Equal(t, "", exportName(""))
}

func Test_indent_prefixesEveryLine(t *testing.T) {
	got := indent("a\nb")
	assert.Equal(t, "\ta\n\tb", got)
	assert.Equal(t, "", indent(""))
}
