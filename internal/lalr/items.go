package lalr

import (
	"sort"

	"github.com/kschwaiger/yantra/internal/grammar"
	"github.com/kschwaiger/yantra/internal/oset"
)

// closure expands a kernel config list into its full closure: for every
// config whose symbol after the dot is a non-terminal, every rule of that
// non-terminal's RuleSet is added at dot 0, never duplicating a rule
// already present (§4.3 phase 2).
func closure(g *grammar.Grammar, configs []grammar.Config) []grammar.Config {
	out := append([]grammar.Config(nil), configs...)
	seen := map[string]bool{}
	for _, c := range out {
		seen[configKey(c)] = true
	}

	changed := true
	for changed {
		changed = false
		for _, c := range out {
			next, ok := c.NextSymbol()
			if !ok || next.Kind != grammar.NodeNonTerminal {
				continue
			}
			rs := g.RuleSet(next.Name)
			if rs == nil {
				continue
			}
			for _, r := range rs.Rules {
				nc := grammar.Config{Rule: r, Dot: 0}
				k := configKey(nc)
				if seen[k] {
					continue
				}
				seen[k] = true
				out = append(out, nc)
				changed = true
			}
		}
	}
	return out
}

func configKey(c grammar.Config) string { return grammar.Config{Rule: c.Rule, Dot: c.Dot}.String() }

// gotoSet advances every config in configs whose next symbol is sym,
// returning the closure of the resulting kernel. Returns nil if no config
// advances on sym.
func gotoSet(g *grammar.Grammar, configs []grammar.Config, sym string) []grammar.Config {
	var kernel []grammar.Config
	for _, c := range configs {
		next, ok := c.NextSymbol()
		if !ok || next.Name != sym {
			continue
		}
		kernel = append(kernel, c.Advance())
	}
	if len(kernel) == 0 {
		return nil
	}
	return closure(g, kernel)
}

// canonicalKey returns ItemSet.Key() computed over a sorted copy of
// configs, so two equal config sets intern to the same state regardless of
// the order closure() happened to produce them in.
func canonicalKey(configs []grammar.Config) string {
	sorted := append([]grammar.Config(nil), configs...)
	sort.Slice(sorted, func(i, j int) bool { return configKey(sorted[i]) < configKey(sorted[j]) })
	is := &grammar.ItemSet{Configs: sorted}
	return is.Key()
}

// symbolsOf collects every distinct symbol name that appears immediately
// after a dot across configs, in first-seen order (for reproducible state
// numbering), using oset.Set for the insertion-order dedup this needs.
func symbolsOf(configs []grammar.Config) []string {
	seen := oset.New()
	for _, c := range configs {
		next, ok := c.NextSymbol()
		if !ok {
			continue
		}
		seen.Add(next.Name)
	}
	return seen.Elements()
}

// buildCanonicalCollection constructs the full canonical collection of
// item sets reachable from the start RuleSet's closure, interning states
// by their sorted-config key (§4.3 phase 2).
func buildCanonicalCollection(g *grammar.Grammar) []*grammar.ItemSet {
	startSet := g.RuleSet(g.StartRule)
	if startSet == nil {
		return nil
	}
	var kernel []grammar.Config
	for _, r := range startSet.Rules {
		kernel = append(kernel, grammar.Config{Rule: r, Dot: 0})
	}
	start := closure(g, kernel)

	byKey := map[string]*grammar.ItemSet{}
	var all []*grammar.ItemSet

	intern := func(configs []grammar.Config) *grammar.ItemSet {
		k := canonicalKey(configs)
		if is, ok := byKey[k]; ok {
			return is
		}
		sorted := append([]grammar.Config(nil), configs...)
		sort.Slice(sorted, func(i, j int) bool { return configKey(sorted[i]) < configKey(sorted[j]) })
		is := grammar.NewItemSet(len(all))
		is.Configs = sorted
		byKey[k] = is
		all = append(all, is)
		return is
	}

	intern(start)

	for i := 0; i < len(all); i++ {
		is := all[i]
		for _, sym := range symbolsOf(is.Configs) {
			target := gotoSet(g, is.Configs, sym)
			if target == nil {
				continue
			}
			dest := intern(target)
			if g.IsTerminal(sym) {
				is.Shift[sym] = grammar.Action{Kind: grammar.ActionShift, Target: dest.Index}
			} else {
				is.Goto[sym] = grammar.Action{Kind: grammar.ActionGoto, Target: dest.Index}
			}
		}
	}

	return all
}
