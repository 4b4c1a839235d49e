package grammar

import (
	"fmt"
	"strings"
)

// Dump renders g back into the textual grammar-file syntax the front-end
// parses, in a canonical order (pragmas, then tokens in precedence order,
// then rules in declaration order). Re-parsing the result and dumping
// again must produce byte-identical text (§8 "Grammar dump idempotence");
// this is why every section is emitted in a fixed, sorted-by-construction
// order rather than map iteration order.
func (g *Grammar) Dump() string {
	var b strings.Builder

	if g.Namespace != "" {
		fmt.Fprintf(&b, "%%namespace %s;\n", g.Namespace)
	}
	if g.Class != "" {
		fmt.Fprintf(&b, "%%class %s;\n", g.Class)
	}
	fmt.Fprintf(&b, "%%start %s;\n", g.StartRule)
	if g.Encoding == EncodingASCII {
		b.WriteString("%encoding ascii;\n")
	} else {
		b.WriteString("%encoding utf8;\n")
	}
	if !g.CheckUnusedTokens {
		b.WriteString("%check_unused_tokens off;\n")
	}
	if !g.AutoResolve {
		b.WriteString("%auto_resolve off;\n")
	}
	if g.WarnResolve {
		b.WriteString("%warn_resolve on;\n")
	}
	b.WriteString("\n")

	for _, rs := range g.RegexSets {
		op := ":="
		switch rs.Associativity {
		case AssocLeft:
			op = ":=>"
		case AssocNone:
			op = ":=="
		}
		for _, re := range rs.Regexes {
			fmt.Fprintf(&b, "%s %s %s ;", rs.Name, op, re.Tree.String())
			if re.Unused {
				b.WriteString(" !")
			}
			if re.ResetMode {
				b.WriteString(" []")
			} else if re.PopMode {
				b.WriteString(" [^]")
			} else if re.Mode != "" {
				fmt.Fprintf(&b, " [%s]", re.Mode)
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	fallbackKeys := make([]string, 0, len(g.Fallbacks))
	for k := range g.Fallbacks {
		fallbackKeys = append(fallbackKeys, k)
	}
	sortStrings(fallbackKeys)
	for _, primary := range fallbackKeys {
		fmt.Fprintf(&b, "%%fallback %s %s;\n", primary, strings.Join(g.Fallbacks[primary], " "))
	}

	for _, rs := range g.RuleSets {
		for _, r := range rs.Rules {
			fmt.Fprintf(&b, "%s(%s) := ", rs.Name, rs.Name)
			// the end-of-input terminal the front-end appends to start rules
			// is not grammar syntax; leave it out so the dump re-parses
			nodes := r.Nodes
			if k := len(nodes); k > 0 && nodes[k-1].Kind == NodeTerminal && nodes[k-1].Name == EndOfInput {
				nodes = nodes[:k-1]
			}
			if len(nodes) == 0 {
				b.WriteString("ε")
			}
			for i, n := range nodes {
				if i > 0 {
					b.WriteString(" ")
				}
				if i == r.Anchor {
					b.WriteString("^")
				}
				b.WriteString(n.Name)
				if n.Var != "" {
					fmt.Fprintf(&b, ":%s", n.Var)
				}
			}
			if r.Precedence != nil {
				fmt.Fprintf(&b, " [%s]", r.Precedence.Name)
			}
			b.WriteString(" ;\n")
		}
	}

	return b.String()
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
