package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kschwaiger/yantra/internal/gerrors"
)

func Test_Grammar_EnsureRegexSet_assignsIncreasingPrecedence(t *testing.T) {
	g := New()
	a := g.EnsureRegexSet("A", AssocRight)
	b := g.EnsureRegexSet("B", AssocLeft)
	again := g.EnsureRegexSet("A", AssocRight)

	assert.Equal(t, 1, a.Precedence)
	assert.Equal(t, 2, b.Precedence)
	assert.Same(t, a, again)
}

func Test_Grammar_EnsureMode_allocatesRootState(t *testing.T) {
	g := New()
	m := g.EnsureMode("default")

	root := g.State(m.Root)
	assert.True(t, root.Root)
	assert.Equal(t, "default", root.ModeName)
}

func Test_RuleSet_AddRule_epsilonGetsIDZero(t *testing.T) {
	rs := &RuleSet{Name: "expr"}
	eps := &Rule{LeftSide: "expr"}
	real := &Rule{LeftSide: "expr", Nodes: []Node{{Kind: NodeTerminal, Name: "NUM"}}}

	rs.AddRule(eps)
	rs.AddRule(real)

	assert.Equal(t, 0, eps.ID)
	assert.Equal(t, 1, real.ID)
	assert.True(t, rs.HasEpsilon())
}

func Test_Rule_ResolveAnchor_defaultsToFirstTerminal(t *testing.T) {
	r := &Rule{Nodes: []Node{
		{Kind: NodeNonTerminal, Name: "expr"},
		{Kind: NodeTerminal, Name: "PLUS"},
		{Kind: NodeNonTerminal, Name: "term"},
	}}
	r.ResolveAnchor(false)
	assert.Equal(t, 1, r.Anchor)
}

func Test_Rule_ResolveAnchor_explicitIsUntouched(t *testing.T) {
	r := &Rule{Anchor: 2, Nodes: []Node{
		{Kind: NodeTerminal, Name: "A"},
		{Kind: NodeTerminal, Name: "B"},
		{Kind: NodeTerminal, Name: "C"},
	}}
	r.ResolveAnchor(true)
	assert.Equal(t, 2, r.Anchor)
}

func Test_Grammar_Validate_rejectsUnknownStartRule(t *testing.T) {
	g := New()
	g.StartRule = "nope"
	err := g.Validate()
	assert.Error(t, err)
	assert.True(t, gerrors.Is(err, gerrors.UnknownStartRule))
}

func Test_Grammar_Dump_isIdempotentOnFallbackOrder(t *testing.T) {
	g := New()
	g.Fallbacks["ID"] = []string{"KEYWORD_IF", "KEYWORD_ELSE"}
	g.Fallbacks["NUM"] = []string{"HEX"}
	g.EnsureRuleSet("start")

	first := g.Dump()
	second := g.Dump()
	assert.Equal(t, first, second)
}
