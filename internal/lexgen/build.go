// Package lexgen synthesises lexer DFAs from the Atom trees of a Grammar's
// RegexSets (§4.2). It builds one sub-automaton per LexerMode directly
// against grammar.State/grammar.Transition rather than through a
// regexp-compiled engine: token matching at generation time has to be
// inspectable (precedence, mode transitions, capture flags all live on the
// emitted states), which a black-box regexp.Regexp cannot give us.
package lexgen

import (
	"sort"

	"github.com/kschwaiger/yantra/internal/gerrors"
	"github.com/kschwaiger/yantra/internal/grammar"
)

// Build constructs every LexerMode's State graph from its RegexSets'
// parsed trees, mutating g in place. It must run after the front-end has
// finished (every token definition and %lexer_mode pragma already bound)
// and before lalr.Build, which does not touch lexer state at all but
// shares the same Grammar.
func Build(g *grammar.Grammar) error {
	if len(g.LexerModes) == 0 {
		g.EnsureMode("default")
	}

	for _, rs := range g.RegexSets {
		for _, re := range rs.Regexes {
			modeName := re.Mode
			if modeName == "" {
				modeName = "default"
			}
			mode := g.Mode(modeName)
			if mode == nil {
				return gerrors.Newf(gerrors.InvalidInput, re.Pos, "token %q declares unknown lexer mode %q", rs.Name, modeName)
			}
			ends, err := buildAtom(g, []grammar.StateID{mode.Root}, re.Tree)
			if err != nil {
				return err
			}
			for _, end := range ends {
				claimAccept(g, end, re, rs)
			}
		}
	}
	return nil
}

// claimAccept marks end as an accept state for re, unless a
// higher-priority (lower RegexSet.Precedence) token has already claimed it
// — the classic "first rule listed wins" tie-break for overlapping lexical
// definitions.
func claimAccept(g *grammar.Grammar, end grammar.StateID, re *grammar.Regex, rs *grammar.RegexSet) {
	st := g.State(end)
	if st.MatchedRegex != nil {
		existing := regexSetOf(g, st.MatchedRegex)
		if existing != nil && existing.Precedence <= rs.Precedence {
			return
		}
	}
	st.MatchedRegex = re
	st.CheckEOF = true
}

func regexSetOf(g *grammar.Grammar, re *grammar.Regex) *grammar.RegexSet {
	for _, rs := range g.RegexSets {
		for _, r := range rs.Regexes {
			if r == re {
				return rs
			}
		}
	}
	return nil
}

// buildAtom extends every state in from along atom, returning the set of
// states reachable once atom has been fully consumed. Disjunction forks
// the construction into independent branches rather than merging them
// through an epsilon transition (the grammar.Transition taxonomy has none);
// this generator trades a larger, non-minimal state graph for the
// simplicity of building directly against named, inspectable states.
func buildAtom(g *grammar.Grammar, from []grammar.StateID, atom *grammar.Atom) ([]grammar.StateID, error) {
	switch atom.Kind {
	case grammar.AtomSequence:
		mid, err := buildAtom(g, from, atom.Left)
		if err != nil {
			return nil, err
		}
		return buildAtom(g, mid, atom.Right)

	case grammar.AtomDisjunct:
		left, err := buildAtom(g, from, atom.Left)
		if err != nil {
			return nil, err
		}
		right, err := buildAtom(g, from, atom.Right)
		if err != nil {
			return nil, err
		}
		return dedupStates(append(left, right...)), nil

	case grammar.AtomGroup:
		return buildAtom(g, from, atom.Inner)

	case grammar.AtomClosure:
		return buildClosure(g, from, atom)

	case grammar.AtomPrimitive, grammar.AtomClass, grammar.AtomWildcard:
		return stepAll(g, from, atom, true), nil

	default:
		return nil, gerrors.Newf(gerrors.InvalidInput, gerrors.Pos{}, "unhandled atom kind %s", atom.Kind)
	}
}

// stepAll advances every state in from by one primitive/class/wildcard
// transition on trigger, reusing an existing transition per §4.2
// ("Primitive: if an outgoing transition on that atom exists, follow it")
// and otherwise allocating a fresh state in the mode owning `from`.
func stepAll(g *grammar.Grammar, from []grammar.StateID, trigger *grammar.Atom, capture bool) []grammar.StateID {
	var out []grammar.StateID
	for _, id := range from {
		st := g.State(id)
		if t := st.FindOn(trigger); t != nil {
			out = append(out, t.Next)
			continue
		}
		next := g.NewState(st.ModeName)
		kind := grammar.TransPrimitive
		if trigger.Kind == grammar.AtomClass {
			kind = grammar.TransClass
		} else if trigger.Kind == grammar.AtomWildcard {
			kind = grammar.TransWildcard
		}
		st.AddTransition(&grammar.Transition{Kind: kind, Trigger: trigger, Next: next.ID, Capture: capture})
		out = append(out, next.ID)
	}
	return dedupStates(out)
}

// buildClosure expands a counted-repetition atom into the five-state
// Enter/PreLoop/InLoop/PostLoop/Leave skeleton described in §4.2, wiring a
// ClosureInfo onto the head state so the emitter can bound the loop.
func buildClosure(g *grammar.Grammar, from []grammar.StateID, atom *grammar.Atom) ([]grammar.StateID, error) {
	var ends []grammar.StateID
	for _, id := range from {
		head := g.State(id)
		enter := g.NewState(head.ModeName)
		head.AddTransition(&grammar.Transition{Kind: grammar.TransClosureEnter, Trigger: atom.Inner, Next: enter.ID, Capture: false, ClosureHead: head.ID})

		preLoop, err := buildAtom(g, []grammar.StateID{enter.ID}, atom.Inner)
		if err != nil {
			return nil, err
		}

		var inLoopEnds []grammar.StateID
		for _, p := range preLoop {
			pSt := g.State(p)
			loopBack := g.NewState(pSt.ModeName)
			pSt.AddTransition(&grammar.Transition{Kind: grammar.TransClosureInLoop, Trigger: atom.Inner, Next: loopBack.ID, Capture: false, ClosureHead: head.ID})
			inLoopEnds = append(inLoopEnds, loopBack.ID)
		}

		leave := g.NewState(head.ModeName)
		for _, p := range preLoop {
			pSt := g.State(p)
			pSt.AddTransition(&grammar.Transition{Kind: grammar.TransClosureLeave, Trigger: atom.Inner, Next: leave.ID, Capture: false, ClosureHead: head.ID})
		}
		if atom.Min == 0 {
			head.AddTransition(&grammar.Transition{Kind: grammar.TransClosurePostLoop, Trigger: atom.Inner, Next: leave.ID, Capture: false, ClosureHead: head.ID})
		}

		head.Closure = &grammar.ClosureInfo{
			Min: atom.Min, Max: atom.Max,
			Enter: enter.ID, Start: head.ID, Leave: leave.ID,
		}
		if len(preLoop) > 0 {
			head.Closure.PreLoop = preLoop[0]
		}
		if len(inLoopEnds) > 0 {
			head.Closure.InLoop = inLoopEnds[0]
			head.Closure.PostLoop = inLoopEnds[0]
		}

		ends = append(ends, leave.ID)
	}
	return dedupStates(ends), nil
}

func dedupStates(ids []grammar.StateID) []grammar.StateID {
	seen := map[grammar.StateID]bool{}
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
