package grammar

import "github.com/kschwaiger/yantra/internal/gerrors"

// NodeKind distinguishes a rule's right-hand-side occurrences.
type NodeKind int

const (
	NodeTerminal NodeKind = iota
	NodeNonTerminal
)

// Node is one right-hand-side occurrence in a Rule: a terminal or
// non-terminal reference, with an optional variable name used by semantic
// action code blocks to refer to the matched child.
type Node struct {
	Kind NodeKind
	Name string // token name if Kind==NodeTerminal, rule-set name otherwise
	Var  string // optional `name` binding, "" if unbound
}

// Rule is one production: an ordered list of Nodes, plus the index of the
// node that anchors the rule's source position for diagnostics (§3, §
// GLOSSARY "Anchor").
type Rule struct {
	ID        int // unique within its RuleSet; the ε rule, if any, is id 0
	LeftSide  string
	Nodes     []Node
	Anchor    int
	Precedence *RegexSet // optional `[TOKEN]` binding; nil if unset
	Codeblocks []*CodeBlock
	Pos       gerrors.Pos
}

// IsEpsilon reports whether r is the empty production for its RuleSet.
func (r *Rule) IsEpsilon() bool { return len(r.Nodes) == 0 }

// ResolveAnchor fills in r.Anchor per §3's default rule when the grammar
// author did not mark one explicitly with `^`: the first terminal node, or
// index 0 if the rule has no terminal nodes (or no nodes at all, in which
// case the anchor is meaningless and left at 0).
func (r *Rule) ResolveAnchor(explicit bool) {
	if explicit {
		return
	}
	for i, n := range r.Nodes {
		if n.Kind == NodeTerminal {
			r.Anchor = i
			return
		}
	}
	r.Anchor = 0
}

// String renders the rule as "Left -> N1 N2 N3" (or "Left -> ε"), the form
// used by grammar dumps and diagnostics.
func (r *Rule) String() string {
	s := r.LeftSide + " -> "
	if r.IsEpsilon() {
		return s + "ε"
	}
	for i, n := range r.Nodes {
		if i > 0 {
			s += " "
		}
		s += n.Name
	}
	return s
}

// RuleSet is all Rules reducing to the same left-hand name.
type RuleSet struct {
	Name      string
	Rules     []*Rule
	nextID    int
	hasEpsilon bool
}

// AddRule appends r to the set, assigning it an id. The ε rule, if any,
// must be added with id 0 and a RuleSet may have at most one (§3
// invariant); AddRule enforces that by returning an error via the caller's
// validation pass, not here — callers (the front-end) are expected to
// check IsEpsilon before calling and reject a second one themselves, since
// only the front-end has the position information needed for a good
// diagnostic.
func (rs *RuleSet) AddRule(r *Rule) {
	if r.IsEpsilon() {
		r.ID = 0
		rs.hasEpsilon = true
	} else {
		if rs.nextID == 0 {
			rs.nextID = 1
		}
		r.ID = rs.nextID
		rs.nextID++
	}
	rs.Rules = append(rs.Rules, r)
}

// HasEpsilon reports whether this RuleSet already has an ε rule.
func (rs *RuleSet) HasEpsilon() bool { return rs.hasEpsilon }
