package yantra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kschwaiger/yantra/internal/grammar"
)

const genGrammar = `
%namespace calc;
%class Calc;
%start expr;

NUM := \d+ ;
PLUS := "+" ;

%left PLUS;

expr(expr) := expr:l PLUS expr:r [PLUS] ;
expr(expr) := NUM:n ;
`

func Test_GenerateFromSource_runsFullPipeline(t *testing.T) {
	g := New()
	run, err := g.GenerateFromSource(genGrammar, "calc.yantra")
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	assert.NotNil(t, run.Grammar)
	assert.NotEmpty(t, run.Output.Header)
}

func Test_GenerateFromSource_propagatesFrontEndErrors(t *testing.T) {
	g := New()
	_, err := g.GenerateFromSource("%bogus foo;\n", "bad.yantra")
	assert.Error(t, err)
}

func Test_GenerateFromMarkdown_extractsFencedGrammar(t *testing.T) {
	src := []byte("# Calc\n\nSome prose.\n\n```yantra\n" + genGrammar + "\n```\n")
	g := New()
	run, err := g.GenerateFromMarkdown(src, "calc.md")
	require.NoError(t, err)
	assert.NotEmpty(t, run.Output.Header)
}

func Test_GenerateFromSource_preBuildRunsBeforeValidationAndEmission(t *testing.T) {
	g := New()
	var sawEncoding grammar.Encoding
	g.PreBuild = func(gr *grammar.Grammar) {
		gr.Encoding = grammar.EncodingASCII
		sawEncoding = gr.Encoding
	}
	_, err := g.GenerateFromSource("NAME := \"café\" ;\n%start start;\nstart(start) := NAME ;\n", "override.yantra")
	require.Error(t, err)
	assert.True(t, sawEncoding == grammar.EncodingASCII)
}

func Test_GenerateFromSource_amalgamatedSkipsSourceSplit(t *testing.T) {
	g := New()
	g.Amalgamated = true
	run, err := g.GenerateFromSource(genGrammar, "calc.yantra")
	require.NoError(t, err)
	assert.Empty(t, run.Output.Source)
}
