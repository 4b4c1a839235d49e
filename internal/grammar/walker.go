package grammar

import "github.com/kschwaiger/yantra/internal/gerrors"

// Traversal is the discipline a Walker uses to visit the AST.
type Traversal int

const (
	TraversalManual Traversal = iota
	TraversalTopDown
)

// FunctionSig is a per-walker, per-ruleset semantic-function signature
// declared with `%function rs Walker::fn(args) -> type;`.
type FunctionSig struct {
	RuleSet  string
	Walker   string
	Func     string
	Args     []string
	Return   string
	Autowalk bool // `->>` enables autowalk instead of `->`
	Pos      gerrors.Pos
}

// CodeBlock is the body text of one `%{ ... %}` semantic action, attached
// to a Rule and routed to a Walker/function pair (defaulting to the
// grammar's %default_walker when no `@walker::func` prefix is given).
type CodeBlock struct {
	Walker string
	Func   string
	Body   string
	Pos    gerrors.Pos
}

// Walker is a named semantic-action family. It may extend a parent walker,
// in which case a lookup for "does this walker define function F for
// ruleset R" walks the chain leaf-first and stops at the first match (§9
// "Walker inheritance").
type Walker struct {
	Name       string
	Parent     string // "" if this walker has no parent
	Traversal  Traversal
	OutputText bool   // declared via %walker_output ... text_file
	OutputExt  string
	Members    string // raw %members code block body, if any
	Funcs      map[string]*FunctionSig // keyed by "RuleSet"
}

// NewWalker returns an empty Walker with manual traversal (the default
// when %walker_traversal is not specified for it).
func NewWalker(name string) *Walker {
	return &Walker{Name: name, Funcs: map[string]*FunctionSig{}}
}

// ResolveFunc walks w's inheritance chain (leaf-first, i.e. starting at w
// itself) looking up a FunctionSig for ruleset. all must map every walker
// name in the Grammar to its *Walker so the chain can be followed.
func (w *Walker) ResolveFunc(ruleSet string, all map[string]*Walker) *FunctionSig {
	cur := w
	for cur != nil {
		if sig, ok := cur.Funcs[ruleSet]; ok {
			return sig
		}
		if cur.Parent == "" {
			return nil
		}
		cur = all[cur.Parent]
	}
	return nil
}
