package emit

import (
	_ "embed"

	"github.com/kschwaiger/yantra/internal/grammar"
)

//go:embed templates/prototype.go.tmpl
var prototypeTemplate string

// Result is the emitter's output: either one amalgamated file (Header set,
// Source empty) or a header/source pair, per §"Output layout".
type Result struct {
	Header string
	Source string
}

// Generate runs the directive scanner and tag substitution over the
// embedded prototype skeleton against g, producing the final generated Go
// source (§4.4/emitter). maxRepeatCount(g), the largest counted-repetition
// closure bound anywhere in the grammar's lexer states, supplies the
// MAX_REPEAT_COUNT tag.
func Generate(g *grammar.Grammar, opt Options) (Result, error) {
	class := g.Class
	if class == "" {
		class = "Parser"
	}
	namespace := g.Namespace
	if namespace == "" {
		namespace = "generated"
	}

	dict := baseDict(namespace, class, g.StartRule, maxRepeatCount(g), exportName(class)+"Node")
	segments := buildSegments(g, class, dict)
	includes := map[string]string{}

	header, source, err := process(prototypeTemplate, g, opt, segments, includes, dict)
	if err != nil {
		return Result{}, err
	}
	return Result{Header: header, Source: source}, nil
}

func maxRepeatCount(g *grammar.Grammar) int {
	max := 0
	for _, st := range g.States {
		if st.Closure != nil && st.Closure.Max > max {
			max = st.Closure.Max
		}
	}
	return max
}
