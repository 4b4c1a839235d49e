package lexgen

import "github.com/kschwaiger/yantra/internal/grammar"

// Optimize runs the superset/shadow transition pass described in §4.2: when
// one state's outgoing triggers are a strict subset of a sibling's (e.g. a
// `[0-9]` digit transition next to a `.` wildcard), the narrower
// destination state is missing the continuations that only the wider
// transition's destination knows about. Cloning those continuations onto
// the narrower destination (marked Super) lets the emitted lexer keep
// matching the longest possible token after taking the specific transition,
// instead of only after the generic one.
//
// Optimize re-runs cloning over every state until no state gains a new
// transition, since a freshly cloned transition can itself now be a subset
// of something else reachable from the same state.
func Optimize(g *grammar.Grammar) {
	for {
		changed := false
		for _, s := range g.States {
			if cloneSupersets(g, s) {
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

func cloneSupersets(g *grammar.Grammar, s *grammar.State) bool {
	changed := false
	// iterate a snapshot since cloning may append to s.Out via AddTransition
	snapshot := make([]*grammar.Transition, len(s.Out))
	copy(snapshot, s.Out)

	for _, narrow := range snapshot {
		for _, wide := range snapshot {
			if narrow == wide {
				continue
			}
			if !narrow.Trigger.IsSubsetOf(wide.Trigger) {
				continue
			}
			if cloneContinuations(g, narrow.Next, wide.Next) {
				changed = true
			}
		}
	}
	return changed
}

// cloneContinuations copies every transition out of src's state onto dst's
// state that dst does not already have an equal-trigger transition for,
// marking the copies Super. Returns whether anything was added.
func cloneContinuations(g *grammar.Grammar, dst, src grammar.StateID) bool {
	if dst == src {
		return false
	}
	dstState := g.State(dst)
	srcState := g.State(src)
	changed := false
	for _, t := range srcState.Out {
		if dstState.FindOn(t.Trigger) != nil {
			continue
		}
		clone := &grammar.Transition{
			Kind:        t.Kind,
			Trigger:     t.Trigger,
			Next:        t.Next,
			Capture:     t.Capture,
			Super:       true,
			ClosureHead: t.ClosureHead,
		}
		dstState.AddTransition(clone)
		changed = true
	}
	if srcState.MatchedRegex != nil && dstState.MatchedRegex == nil {
		dstState.MatchedRegex = srcState.MatchedRegex
		dstState.CheckEOF = srcState.CheckEOF
		changed = true
	}
	return changed
}

// MarkShadows annotates, for every state with both an originally-authored
// transition and a transition cloned onto it by Optimize, which of the
// original transitions are now "shadowed": those whose trigger is a strict
// subset of a cloned (Super) sibling's trigger on the same state. The flag
// is informational; the emitter's lexer tables do not read it.
func MarkShadows(g *grammar.Grammar) {
	for _, s := range g.States {
		for _, t := range s.Out {
			if !t.Super {
				continue
			}
			for _, sib := range s.Out {
				if !sib.Super && sib.Trigger.IsSubsetOf(t.Trigger) {
					sib.Shadow = true
				}
			}
		}
	}
}
