package frontend

import (
	"github.com/kschwaiger/yantra/internal/gerrors"
	"github.com/kschwaiger/yantra/internal/grammar"
)

// bind runs the front-end's deferred binding passes (§4.1), which must wait
// until the whole source file has been scanned because later pragmas and
// rule definitions can resolve references made earlier in the file (a rule
// may reference a token declared afterward, a %function may name a walker
// declared afterward, etc.):
//
//  1. attach each pending %function signature to its walker
//  2. build every pending rule into a *grammar.Rule, resolve its optional
//     precedence-token reference, and add it to its RuleSet
//  3. mark every referenced token (directly, or transitively through
//     %fallback) as used
//  4. append the end-of-input marker to every production of the start
//     RuleSet
func (p *parser) bind() error {
	for _, sig := range p.pendingFuncs {
		w := p.g.EnsureWalker(sig.Walker)
		if _, dup := w.Funcs[sig.RuleSet]; dup {
			return gerrors.Newf(gerrors.DuplicateFunction, sig.Pos, "walker %q already has a function for ruleset %q", sig.Walker, sig.RuleSet)
		}
		w.Funcs[sig.RuleSet] = sig
	}

	for _, pr := range p.pendingRules {
		rule := &grammar.Rule{
			LeftSide:   pr.ruleSetName,
			Nodes:      pr.nodes,
			Anchor:     pr.anchor,
			Codeblocks: pr.Codeblocks,
			Pos:        pr.pos,
		}

		if pr.precName != "" {
			rs := p.g.RegexSet(pr.precName)
			if rs == nil {
				return gerrors.Newf(gerrors.UnknownRuleset, pr.precPos, "rule %q references unknown token %q for precedence", pr.ruleSetName, pr.precName)
			}
			rule.Precedence = rs
			markTokenUsed(rs)
		}

		for _, w := range rule.Codeblocks {
			walker := p.g.EnsureWalker(w.Walker)
			if walker.Funcs[pr.ruleSetName] == nil {
				return gerrors.Newf(gerrors.UnknownWalker, w.Pos, "rule %q routes a code block to %s::%s, but no %%function declares that signature", pr.ruleSetName, w.Walker, w.Func)
			}
		}

		rule.ResolveAnchor(pr.anchorExplicit)

		target := p.g.EnsureRuleSet(pr.ruleSetName)
		if rule.IsEpsilon() && target.HasEpsilon() {
			return gerrors.Newf(gerrors.MultipleEmptyRules, pr.pos, "ruleset %q already has an empty production", pr.ruleSetName)
		}
		target.AddRule(rule)

		for _, n := range rule.Nodes {
			if n.Kind == grammar.NodeTerminal {
				if rs := p.g.RegexSet(n.Name); rs != nil {
					markTokenUsed(rs)
				}
			}
		}
	}

	for primary, alts := range p.g.Fallbacks {
		prs := p.g.RegexSet(primary)
		if prs == nil {
			return gerrors.Newf(gerrors.UnknownRuleset, gerrors.Pos{}, "%%fallback names unknown primary token %q", primary)
		}
		for _, alt := range alts {
			ars := p.g.RegexSet(alt)
			if ars == nil {
				return gerrors.Newf(gerrors.UnknownRuleset, gerrors.Pos{}, "%%fallback names unknown alternate token %q", alt)
			}
			markTokenUsed(ars)
		}
	}

	startSet := p.g.RuleSet(p.g.StartRule)
	if startSet != nil {
		for _, r := range startSet.Rules {
			r.Nodes = append(r.Nodes, grammar.Node{Kind: grammar.NodeTerminal, Name: grammar.EndOfInput})
		}
	}

	return nil
}

// markTokenUsed increments the use count of one Regex belonging to rs,
// enough to satisfy the RegexSet-level "was this token ever referenced"
// check that Grammar.Validate performs for %check_unused_tokens.
func markTokenUsed(rs *grammar.RegexSet) {
	if len(rs.Regexes) > 0 {
		rs.Regexes[0].MarkUsed()
	}
}
