// Package lalr synthesises a canonical LALR(1)-style parsing table from a
// Grammar's RuleSets (§4.3): FIRST/FOLLOW/NULLABLE fixpoints, canonical
// item-set construction, conflict resolution by precedence and
// associativity, and linking SHIFT/REDUCE/GOTO actions onto each
// grammar.ItemSet.
package lalr

import "github.com/kschwaiger/yantra/internal/grammar"

// computeNullableFirst runs the standard worklist fixpoint for NULLABLE and
// FIRST over every terminal and non-terminal, iterating until neither
// relation grows (§4.3 phase 1).
func computeNullableFirst(g *grammar.Grammar) {
	for _, t := range g.Terminals() {
		g.EnsureFirst(t).Add(t)
	}

	changed := true
	for changed {
		changed = false
		for _, rs := range g.RuleSets {
			for _, r := range rs.Rules {
				if r.IsEpsilon() {
					if !g.Nullable[rs.Name] {
						g.Nullable[rs.Name] = true
						changed = true
					}
					continue
				}
				allNullableSoFar := true
				for _, n := range r.Nodes {
					added := addFirstOfSymbol(g, rs.Name, n.Name)
					if added {
						changed = true
					}
					if !isNullableSymbol(g, n) {
						allNullableSoFar = false
						break
					}
				}
				if allNullableSoFar && !g.Nullable[rs.Name] {
					g.Nullable[rs.Name] = true
					changed = true
				}
			}
		}
	}
}

func isNullableSymbol(g *grammar.Grammar, n grammar.Node) bool {
	if n.Kind == grammar.NodeTerminal {
		return false
	}
	return g.Nullable[n.Name]
}

// addFirstOfSymbol merges FIRST(sym) into FIRST(into), returning whether
// anything new was added.
func addFirstOfSymbol(g *grammar.Grammar, into, sym string) bool {
	dst := g.EnsureFirst(into)
	src := g.EnsureFirst(sym)
	changed := false
	for _, t := range src.Elements() {
		if dst.Add(t) {
			changed = true
		}
	}
	return changed
}

// computeFollow runs the standard worklist fixpoint for FOLLOW, seeding
// FOLLOW(start) with the end-of-input marker (§4.3 phase 1).
func computeFollow(g *grammar.Grammar) {
	g.EnsureFollow(g.StartRule).Add(grammar.EndOfInput)

	changed := true
	for changed {
		changed = false
		for _, rs := range g.RuleSets {
			for _, r := range rs.Rules {
				for i, n := range r.Nodes {
					if n.Kind != grammar.NodeNonTerminal {
						continue
					}
					rest := r.Nodes[i+1:]
					firstOfRest, restNullable := firstOfSequence(g, rest)
					dst := g.EnsureFollow(n.Name)
					for t := range firstOfRest {
						if dst.Add(t) {
							changed = true
						}
					}
					if restNullable {
						src := g.EnsureFollow(rs.Name)
						for _, t := range src.Elements() {
							if dst.Add(t) {
								changed = true
							}
						}
					}
				}
			}
		}
	}
}

// firstOfSequence computes FIRST of a node sequence and whether the whole
// sequence is nullable.
func firstOfSequence(g *grammar.Grammar, nodes []grammar.Node) (map[string]bool, bool) {
	out := map[string]bool{}
	for _, n := range nodes {
		if n.Kind == grammar.NodeTerminal {
			out[n.Name] = true
			return out, false
		}
		for _, t := range g.EnsureFirst(n.Name).Elements() {
			out[t] = true
		}
		if !g.Nullable[n.Name] {
			return out, false
		}
	}
	return out, true
}
