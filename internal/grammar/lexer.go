package grammar

// StateID identifies a State within a Grammar. The zero value is reserved
// as the universal error sink (§9 Open Question: "carry a nil sentinel
// uniformly rather than a nullable reference") — a Transition whose Next
// is the zero StateID always means "no valid continuation here", and every
// State's own id is assigned starting at 1 so that the zero value never
// aliases a real state.
type StateID int

// NilState is the reserved error-sink state id.
const NilState StateID = 0

// TransitionKind mirrors the emitter's transition taxonomy (§5 "Transition
// ordering"): it decides both dedup identity and the fixed emission order
// the spec requires (small ranges, escape classes, large ranges, classes,
// closure arms in Enter/PreLoop/InLoop/PostLoop/Leave order, slides,
// wildcards last).
type TransitionKind int

const (
	TransPrimitive TransitionKind = iota
	TransClass
	TransClosureEnter
	TransClosurePreLoop
	TransClosureInLoop
	TransClosurePostLoop
	TransClosureLeave
	TransSlide
	TransWildcard
)

// orderRank gives the fixed total order spec.md §5 mandates for emission
// and dedup of a State's outgoing transitions.
func (k TransitionKind) orderRank() int {
	switch k {
	case TransPrimitive:
		return 0
	case TransClass:
		return 2
	case TransClosureEnter:
		return 3
	case TransClosurePreLoop:
		return 4
	case TransClosureInLoop:
		return 5
	case TransClosurePostLoop:
		return 6
	case TransClosureLeave:
		return 7
	case TransSlide:
		return 8
	case TransWildcard:
		return 9
	default:
		return 1 // large escape classes fall here; see Transition.isLargeEscape
	}
}

// Transition is a directed edge in a lexer State machine: a trigger atom,
// a destination state, and the `capture` flag that tells the emitted
// runtime whether to append the consumed character to the running token
// buffer.
type Transition struct {
	Kind    TransitionKind
	Trigger *Atom
	From    StateID
	Next    StateID // NilState encodes an error sink, per §3 invariant
	Capture bool

	// Super marks a transition cloned onto this state by the optimiser
	// (§4.2) from a superset transition's destination, to distinguish it
	// from originally-authored transitions when the emitter decides
	// whether a match here should also check for a longer token.
	Super bool
	// Shadow is set by lexgen.MarkShadows on an originally-authored
	// transition whose trigger is a strict subset of a Super sibling's on
	// the same state. It is only a flag: no transition is propagated into
	// sibling states because of it.
	Shadow bool

	// ClosureHead, when Kind is one of the TransClosure* kinds, is the
	// state that owns the (min,max) counter this transition manipulates.
	ClosureHead StateID
}

// isLargeEscape reports whether t is a primitive transition keyed on an
// escape-class predicate (\d \w \s ...) as opposed to a literal rune; these
// sort after small literal ranges and before large explicit ranges, per
// §5.
func (t *Transition) isLargeEscape() bool {
	return t.Kind == TransPrimitive && t.Trigger != nil && t.Trigger.IsEscapeClass
}

// LessThan implements the total order on transitions from the same State
// required by §5: small character ranges first, then large escape
// classes, then large ranges, then classes, then closure arms in the fixed
// order, then slides, then wildcards last.
func (t *Transition) LessThan(o *Transition) bool {
	tr, or := t.orderRank(), o.orderRank()
	if tr != or {
		return tr < or
	}
	// within the same rank, order is by trigger's string form for
	// reproducibility (insertion order is not itself meaningful once two
	// transitions share a rank).
	return t.Trigger.String() < o.Trigger.String()
}

func (t *Transition) orderRank() int {
	if t.Kind == TransPrimitive && t.isLargeEscape() {
		return 1
	}
	return t.Kind.orderRank()
}

// ClosureInfo records the (min,max) bounds of a counted-repetition closure
// and the back-references to its enter/leave/check/start edges, per §4.2
// ("The head state records (min, max) and keeps back-references to its
// enter/leave/check/start edges").
type ClosureInfo struct {
	Min, Max int
	Enter    StateID
	PreLoop  StateID
	InLoop   StateID
	PostLoop StateID
	Leave    StateID
	Start    StateID
}

// State is one vertex of a lexer mode's DFA.
type State struct {
	ID          StateID
	Root        bool   // entry state of exactly one LexerMode
	ModeName    string // which LexerMode this state belongs to
	Out         []*Transition
	MatchedRegex *Regex // non-nil iff this is an accept state
	CheckEOF    bool
	Closure     *ClosureInfo // non-nil iff this state is a closure head
}

// AddTransition appends t to the state's outgoing set, keeping the set
// sorted per the total order in §5.
func (s *State) AddTransition(t *Transition) {
	t.From = s.ID
	i := 0
	for i < len(s.Out) && s.Out[i].LessThan(t) {
		i++
	}
	s.Out = append(s.Out, nil)
	copy(s.Out[i+1:], s.Out[i:])
	s.Out[i] = t
}

// FindOn returns the existing outgoing transition on an atom structurally
// equal to trigger, if one exists (§4.2 "Primitive: if an outgoing
// transition on that atom exists, follow it").
func (s *State) FindOn(trigger *Atom) *Transition {
	for _, t := range s.Out {
		if t.Trigger.Equal(trigger) {
			return t
		}
	}
	return nil
}

// LexerMode is a named lexer sub-DFA; only one mode is active at any time
// at runtime, and modes compose via a stack (§ GLOSSARY).
type LexerMode struct {
	Name string
	Root StateID
}
