package emit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kschwaiger/yantra/internal/grammar"
)

// buildSegments renders the named generated blocks the template's
// SEGMENT:name directives splice in. Each is a pure function of the
// Grammar (and, for walkers, the tag dictionary its codeblocks may
// reference); none depend on template-scanner state.
func buildSegments(g *grammar.Grammar, class string, dict map[string]string) map[string]string {
	return map[string]string{
		"astNodeDecls":         astNodeDecls(g, class),
		"astNodeItems":         astNodeItems(g),
		"astNodeDefns":         astNodeDefns(g, class),
		"walkers":              walkerDefns(g, class, dict),
		"createASTNodesDefns":  createASTNodesDefns(g, class),
		"parserTransitions":    parserTransitions(g),
		"lexerStates":          lexerStates(g),
	}
}

// astNodeDecls emits one struct type per non-terminal, one field per
// distinct node-variable binding ever used across that ruleset's
// productions, plus a RuleID field recording which production built it.
func astNodeDecls(g *grammar.Grammar, class string) string {
	var b strings.Builder
	for _, rs := range g.RuleSets {
		fmt.Fprintf(&b, "// %sNode is the AST node produced by ruleset %q.\n", exportName(rs.Name), rs.Name)
		fmt.Fprintf(&b, "type %sNode struct {\n", exportName(rs.Name))
		b.WriteString("\tRuleID int\n")
		seen := map[string]bool{}
		for _, r := range rs.Rules {
			for _, n := range r.Nodes {
				if n.Var == "" || seen[n.Var] {
					continue
				}
				seen[n.Var] = true
				fieldType := "Token"
				if n.Kind == grammar.NodeNonTerminal {
					fieldType = "*" + exportName(n.Name) + "Node"
				}
				fmt.Fprintf(&b, "\t%s %s\n", exportName(n.Var), fieldType)
			}
		}
		b.WriteString("}\n\n")
	}
	return b.String()
}

// astNodeItems emits the shared Token type every terminal-bound AST field
// uses.
func astNodeItems(g *grammar.Grammar) string {
	return "// Token is one matched lexeme with its originating source position.\n" +
		"type Token struct {\n\tType string\n\tText string\n\tLine int\n\tCol  int\n}\n\n"
}

// astNodeDefns emits the constructors, one per Rule. Each takes no
// arguments and returns that production's AST node with only RuleID set;
// the node's child fields are left at their zero values.
func astNodeDefns(g *grammar.Grammar, class string) string {
	var b strings.Builder
	for _, rs := range g.RuleSets {
		for _, r := range rs.Rules {
			fmt.Fprintf(&b, "func new%sNode%d() *%sNode {\n", exportName(rs.Name), r.ID, exportName(rs.Name))
			fmt.Fprintf(&b, "\treturn &%sNode{RuleID: %d}\n}\n\n", exportName(rs.Name), r.ID)
		}
	}
	return b.String()
}

// walkerDefns emits one dispatch method per Walker per RuleSet it (or an
// ancestor) declares a %function for, resolved through the inheritance
// chain (§9 "Walker inheritance"). Each method's body is a switch on the
// reduced rule's id that splices in that rule's routed semantic-action
// codeblock verbatim, after TAG/TAG2 substitution against dict (§4.4
// "invokes user-supplied code blocks verbatim").
func walkerDefns(g *grammar.Grammar, class string, dict map[string]string) string {
	var b strings.Builder
	all := g.WalkersByName()
	for _, w := range g.Walkers {
		fmt.Fprintf(&b, "// %sWalker implements the %q semantic-action family.\n", exportName(w.Name), w.Name)
		fmt.Fprintf(&b, "type %sWalker struct {\n%s\n}\n\n", exportName(w.Name), indent(w.Members))
		for _, rs := range g.RuleSets {
			sig := w.ResolveFunc(rs.Name, all)
			if sig == nil {
				continue
			}
			ret := sig.Return
			if ret == "" {
				ret = "error"
			}
			fmt.Fprintf(&b, "func (w *%sWalker) %s(n *%sNode) %s {\n", exportName(w.Name), exportName(sig.Func), exportName(rs.Name), ret)
			writeWalkerBody(&b, rs, sig, dict)
			b.WriteString("}\n\n")
		}
	}
	return b.String()
}

// writeWalkerBody emits a switch on n.RuleID with one case per Rule in rs,
// splicing in the codeblock that rule routes to sig's walker (if any). A
// rule with no such codeblock falls through to a not-implemented panic, so
// a partially-written walker still compiles and fails loudly the first
// time that specific production is actually reduced rather than silently
// at every reduction the way an unconditional stub body did.
func writeWalkerBody(b *strings.Builder, rs *grammar.RuleSet, sig *grammar.FunctionSig, dict map[string]string) {
	b.WriteString("\tswitch n.RuleID {\n")
	for _, r := range rs.Rules {
		fmt.Fprintf(b, "\tcase %d:\n", r.ID)
		cb := findCodeBlock(r, sig)
		if cb == nil {
			b.WriteString("\t\tpanic(\"not implemented\")\n")
			continue
		}
		for _, line := range strings.Split(cb.Body, "\n") {
			b.WriteString("\t\t" + substituteTags(line, dict) + "\n")
		}
	}
	b.WriteString("\t}\n")
	b.WriteString("\tpanic(\"unreachable: unknown rule id\")\n")
}

// findCodeBlock returns the Rule's codeblock routed to sig's walker, if
// any. A Rule may carry codeblocks for other walkers too; matching on
// Walker alone (rather than also requiring Func to match) follows the
// same rule the front-end's own bind pass enforces (internal/frontend/
// bind.go: a ruleset may route to at most one function per walker).
func findCodeBlock(r *grammar.Rule, sig *grammar.FunctionSig) *grammar.CodeBlock {
	for _, cb := range r.Codeblocks {
		if cb.Walker == sig.Walker {
			return cb
		}
	}
	return nil
}

// createASTNodesDefns emits the dispatcher the generated parser calls after
// a reduction to materialize the right AST node constructor for the rule
// just reduced.
func createASTNodesDefns(g *grammar.Grammar, class string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "func (p *%s) createASTNode(ruleSet string, ruleID int) interface{} {\n", class)
	b.WriteString("\tswitch ruleSet {\n")
	for _, rs := range g.RuleSets {
		fmt.Fprintf(&b, "\tcase %q:\n\t\tswitch ruleID {\n", rs.Name)
		for _, r := range rs.Rules {
			fmt.Fprintf(&b, "\t\tcase %d:\n\t\t\treturn new%sNode%d()\n", r.ID, exportName(rs.Name), r.ID)
		}
		b.WriteString("\t\t}\n")
	}
	b.WriteString("\t}\n\treturn nil\n}\n\n")
	return b.String()
}

// parserTransitions emits the ACTION/GOTO table as Go data, one row per
// ItemSet, so the generated parser's driver loop is a straight slice
// lookup rather than a hand-written switch per state. Fallback tokens
// (§6 "%fallback TOK alt1 alt2 …;") expand into additional case labels in
// every state that shifts or reduces the primary, routed to that same
// action (§ GLOSSARY "Fallback").
func parserTransitions(g *grammar.Grammar) string {
	var b strings.Builder
	b.WriteString("type parserAction struct {\n\tKind   int\n\tTarget int\n\tRuleSet string\n\tRuleID int\n}\n\n")
	b.WriteString("const (\n\tactionError = iota\n\tactionShift\n\tactionReduce\n\tactionGoto\n\tactionAccept\n)\n\n")
	b.WriteString("var parserTable = []map[string]parserAction{\n")
	for _, is := range g.ItemSets {
		b.WriteString("\t{\n")
		tokenActions := map[string]grammar.Action{}
		for sym, act := range is.Shift {
			tokenActions[sym] = act
		}
		for sym, act := range is.Reduce {
			tokenActions[sym] = act
		}
		tokenActions = expandFallbacks(tokenActions, g.Fallbacks)
		for _, sym := range sortedKeys(tokenActions) {
			emitActionEntry(&b, sym, tokenActions[sym])
		}
		for _, sym := range sortedKeys(is.Goto) {
			emitActionEntry(&b, sym, is.Goto[sym])
		}
		b.WriteString("\t},\n")
	}
	b.WriteString("}\n\n")
	return b.String()
}

// expandFallbacks returns actions plus, for every %fallback primary that
// has an action in this state, one additional entry per alternate that
// does not already have its own entry here, routed to the primary's
// action. Primaries are visited in sorted order so the result is
// deterministic regardless of Grammar.Fallbacks' map iteration order;
// final emission order is still decided by the caller's sortedKeys pass.
func expandFallbacks(actions map[string]grammar.Action, fallbacks map[string][]string) map[string]grammar.Action {
	out := make(map[string]grammar.Action, len(actions))
	for sym, act := range actions {
		out[sym] = act
	}
	primaries := make([]string, 0, len(fallbacks))
	for primary := range fallbacks {
		primaries = append(primaries, primary)
	}
	sort.Strings(primaries)
	for _, primary := range primaries {
		act, ok := out[primary]
		if !ok {
			continue
		}
		for _, alt := range fallbacks[primary] {
			if _, exists := out[alt]; exists {
				continue
			}
			out[alt] = act
		}
	}
	return out
}

// sortedKeys returns m's keys in deterministic order, since generated
// table source must not depend on Go's randomized map iteration.
func sortedKeys(m map[string]grammar.Action) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func emitActionEntry(b *strings.Builder, sym string, act grammar.Action) {
	switch act.Kind {
	case grammar.ActionShift:
		fmt.Fprintf(b, "\t\t%q: {Kind: actionShift, Target: %d},\n", sym, act.Target)
	case grammar.ActionGoto:
		fmt.Fprintf(b, "\t\t%q: {Kind: actionGoto, Target: %d},\n", sym, act.Target)
	case grammar.ActionReduce:
		fmt.Fprintf(b, "\t\t%q: {Kind: actionReduce, RuleSet: %q, RuleID: %d},\n", sym, act.Rule.LeftSide, act.Rule.ID)
	case grammar.ActionAccept:
		fmt.Fprintf(b, "\t\t%q: {Kind: actionAccept},\n", sym)
	}
}

// lexerStates emits the lexer DFA as Go data: one row per State, listing
// its outgoing transitions in the fixed §5 order already guaranteed by
// State.AddTransition.
func lexerStates(g *grammar.Grammar) string {
	var b strings.Builder
	b.WriteString("type lexerTransition struct {\n\tTrigger string\n\tNext    int\n\tCapture bool\n}\n\n")
	b.WriteString("var lexerStateTable = [][]lexerTransition{\n")
	for _, st := range g.States {
		b.WriteString("\t{\n")
		for _, t := range st.Out {
			fmt.Fprintf(&b, "\t\t{Trigger: %q, Next: %d, Capture: %v},\n", t.Trigger.String(), t.Next, t.Capture)
		}
		b.WriteString("\t},\n")
	}
	b.WriteString("}\n\n")
	return b.String()
}

func exportName(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func indent(s string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "\t" + l
	}
	return strings.Join(lines, "\n")
}
