package grammar

import "fmt"

// AtomKind discriminates the variants of a regex expression tree node.
// Atoms are tagged unions rather than an interface hierarchy: the
// generator needs to compare atoms structurally (IsSubsetOf, below) far
// more often than it needs per-kind polymorphic behavior, and a closed
// switch on Kind reads more plainly than a type-switch over six
// implementations of one interface.
type AtomKind int

const (
	AtomPrimitive AtomKind = iota
	AtomSequence
	AtomDisjunct
	AtomClass
	AtomGroup
	AtomClosure
	AtomWildcard
)

func (k AtomKind) String() string {
	switch k {
	case AtomPrimitive:
		return "Primitive"
	case AtomSequence:
		return "Sequence"
	case AtomDisjunct:
		return "Disjunct"
	case AtomClass:
		return "Class"
	case AtomGroup:
		return "Group"
	case AtomClosure:
		return "Closure"
	case AtomWildcard:
		return "Wildcard"
	default:
		return "?"
	}
}

// ClassRange is one inclusive rune range contributed to a Class atom, e.g.
// the `a-z` in `[a-z0-9_]`.
type ClassRange struct {
	Lo, Hi rune
}

// Atom is one node of a Regex's expression tree.
type Atom struct {
	Kind AtomKind

	// AtomPrimitive: a single literal rune, or an escape-class predicate
	// name (one of "d", "D", "l", "L", "w", "W", "s", "S", "b", "B") when
	// IsEscapeClass is true.
	Literal       rune
	IsEscapeClass bool
	EscapeClass   string

	// AtomSequence / AtomDisjunct: left and right children.
	Left, Right *Atom

	// AtomClass: the ranges making up the class, plus whether it is
	// negated (`[^...]`).
	Ranges   []ClassRange
	Negated  bool

	// AtomGroup: the inner atom, and whether group matches are captured
	// into the running token buffer (the `!` suffix on `(...)` disables
	// capture).
	Inner    *Atom
	Captures bool

	// AtomClosure: inner atom repeated, bounds [Min, Max]. Max == -1 means
	// unbounded (`*`, `+`, `{m,}`).
	Min, Max int
}

// NewLiteral returns a primitive atom matching exactly r.
func NewLiteral(r rune) *Atom {
	return &Atom{Kind: AtomPrimitive, Literal: r}
}

// NewEscapeClass returns a primitive atom matching the named escape class
// (one of d D l L w W s S b B).
func NewEscapeClass(name string) *Atom {
	return &Atom{Kind: AtomPrimitive, IsEscapeClass: true, EscapeClass: name}
}

// NewWildcard returns the `.` atom, matching any rune except newline.
func NewWildcard() *Atom {
	return &Atom{Kind: AtomWildcard}
}

// NewSequence returns an atom matching l followed by r.
func NewSequence(l, r *Atom) *Atom {
	return &Atom{Kind: AtomSequence, Left: l, Right: r}
}

// NewDisjunct returns an atom matching l or r.
func NewDisjunct(l, r *Atom) *Atom {
	return &Atom{Kind: AtomDisjunct, Left: l, Right: r}
}

// NewClass returns an atom matching any rune in ranges, or (if negated) any
// rune not in ranges.
func NewClass(ranges []ClassRange, negated bool) *Atom {
	return &Atom{Kind: AtomClass, Ranges: ranges, Negated: negated}
}

// NewGroup returns an atom matching inner, capturing consumed text into the
// token buffer iff captures is true.
func NewGroup(inner *Atom, captures bool) *Atom {
	return &Atom{Kind: AtomGroup, Inner: inner, Captures: captures}
}

// NewClosure returns an atom matching inner repeated between min and max
// times inclusive (max == -1 for unbounded).
func NewClosure(inner *Atom, min, max int) *Atom {
	return &Atom{Kind: AtomClosure, Inner: inner, Min: min, Max: max}
}

// Matches reports whether r satisfies this atom, when the atom is one of
// the primitive/class/wildcard kinds that can be tested against a single
// rune directly (used by the lexer synthesiser's subset test and by the
// bootstrap interpreter in tests).
func (a *Atom) Matches(r rune) bool {
	switch a.Kind {
	case AtomWildcard:
		return r != '\n'
	case AtomPrimitive:
		if a.IsEscapeClass {
			return matchEscapeClass(a.EscapeClass, r)
		}
		return r == a.Literal
	case AtomClass:
		in := false
		for _, rg := range a.Ranges {
			if r >= rg.Lo && r <= rg.Hi {
				in = true
				break
			}
		}
		if a.Negated {
			return !in
		}
		return in
	default:
		return false
	}
}

func matchEscapeClass(name string, r rune) bool {
	switch name {
	case "d":
		return r >= '0' && r <= '9'
	case "D":
		return !(r >= '0' && r <= '9')
	case "l":
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	case "L":
		return !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'))
	case "w":
		return matchEscapeClass("l", r) || matchEscapeClass("d", r) || r == '_'
	case "W":
		return !matchEscapeClass("w", r)
	case "s":
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
	case "S":
		return !matchEscapeClass("s", r)
	case "b":
		return r == '\b'
	case "B":
		return r != '\b'
	default:
		return false
	}
}

// IsSubsetOf reports whether every rune matched by a is also matched by
// sup, for the primitive/class/wildcard atom kinds the lexer optimiser
// compares (§4.2 "superset/shadow transitions"). Atoms of other kinds are
// never subsets of anything by this definition; sequence/disjunct/group/
// closure atoms are not compared directly, only the primitive transition
// triggers derived from them during FSM construction are.
func (a *Atom) IsSubsetOf(sup *Atom) bool {
	if a.Equal(sup) {
		return false // identical triggers are not considered sub/super of each other
	}
	switch sup.Kind {
	case AtomWildcard:
		return a.Kind == AtomPrimitive || a.Kind == AtomClass
	case AtomClass:
		if sup.Negated {
			return atomRangeIsSubsetOfNegated(a, sup)
		}
		return atomIsSubsetOfRanges(a, sup.Ranges)
	case AtomPrimitive:
		if sup.IsEscapeClass {
			return atomIsSubsetOfPredicate(a, sup.EscapeClass)
		}
		return false
	default:
		return false
	}
}

func atomIsSubsetOfRanges(a *Atom, ranges []ClassRange) bool {
	switch a.Kind {
	case AtomPrimitive:
		if a.IsEscapeClass {
			return false
		}
		for _, rg := range ranges {
			if a.Literal >= rg.Lo && a.Literal <= rg.Hi {
				return true
			}
		}
		return false
	case AtomClass:
		if a.Negated {
			return false
		}
		for _, ar := range a.Ranges {
			covered := false
			for _, rg := range ranges {
				if ar.Lo >= rg.Lo && ar.Hi <= rg.Hi {
					covered = true
					break
				}
			}
			if !covered {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func atomRangeIsSubsetOfNegated(a *Atom, sup *Atom) bool {
	// a is a subset of [^ranges] iff nothing a matches falls in ranges.
	switch a.Kind {
	case AtomPrimitive:
		if a.IsEscapeClass {
			return false
		}
		for _, rg := range sup.Ranges {
			if a.Literal >= rg.Lo && a.Literal <= rg.Hi {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func atomIsSubsetOfPredicate(a *Atom, predicate string) bool {
	if a.Kind != AtomPrimitive || !a.IsEscapeClass {
		if a.Kind == AtomPrimitive {
			return matchEscapeClass(predicate, a.Literal)
		}
		return false
	}
	// one escape class is a subset of another only if literally identical,
	// handled by Equal already; distinct predicates may overlap but are
	// not considered sub/super here (no closed-form containment relation
	// between e.g. \w and \l is asserted by this generator).
	return false
}

// Equal reports structural equality of two atoms, the comparison spec.md §5
// requires ("Two transitions compare equal iff their trigger atoms are
// structurally equal").
func (a *Atom) Equal(o *Atom) bool {
	if a == nil || o == nil {
		return a == o
	}
	if a.Kind != o.Kind {
		return false
	}
	switch a.Kind {
	case AtomWildcard:
		return true
	case AtomPrimitive:
		if a.IsEscapeClass != o.IsEscapeClass {
			return false
		}
		if a.IsEscapeClass {
			return a.EscapeClass == o.EscapeClass
		}
		return a.Literal == o.Literal
	case AtomClass:
		if a.Negated != o.Negated || len(a.Ranges) != len(o.Ranges) {
			return false
		}
		for i := range a.Ranges {
			if a.Ranges[i] != o.Ranges[i] {
				return false
			}
		}
		return true
	case AtomSequence, AtomDisjunct:
		return a.Left.Equal(o.Left) && a.Right.Equal(o.Right)
	case AtomGroup:
		return a.Captures == o.Captures && a.Inner.Equal(o.Inner)
	case AtomClosure:
		return a.Min == o.Min && a.Max == o.Max && a.Inner.Equal(o.Inner)
	default:
		return false
	}
}

func (a *Atom) String() string {
	if a == nil {
		return "<nil-atom>"
	}
	switch a.Kind {
	case AtomWildcard:
		return "."
	case AtomPrimitive:
		if a.IsEscapeClass {
			return `\` + a.EscapeClass
		}
		return string(a.Literal)
	case AtomClass:
		neg := ""
		if a.Negated {
			neg = "^"
		}
		s := "[" + neg
		for _, rg := range a.Ranges {
			if rg.Lo == rg.Hi {
				s += string(rg.Lo)
			} else {
				s += fmt.Sprintf("%c-%c", rg.Lo, rg.Hi)
			}
		}
		return s + "]"
	case AtomSequence:
		return a.Left.String() + a.Right.String()
	case AtomDisjunct:
		return "(" + a.Left.String() + "|" + a.Right.String() + ")"
	case AtomGroup:
		bang := ""
		if !a.Captures {
			bang = "!"
		}
		return "(" + a.Inner.String() + ")" + bang
	case AtomClosure:
		bound := fmt.Sprintf("{%d,%d}", a.Min, a.Max)
		if a.Max == -1 {
			if a.Min == 0 {
				bound = "*"
			} else if a.Min == 1 {
				bound = "+"
			} else {
				bound = fmt.Sprintf("{%d,}", a.Min)
			}
		} else if a.Min == 0 && a.Max == 1 {
			bound = "?"
		}
		return a.Inner.String() + bound
	default:
		return "?"
	}
}
