package frontend

import (
	"strings"

	"github.com/kschwaiger/yantra/internal/gerrors"
	"github.com/kschwaiger/yantra/internal/grammar"
)

// parseRuleDef parses one production, `name(label) := node1 node2 ... [TOKEN]
// codeblock* ;`, where name and the opening paren have already been
// consumed by the caller. label is conventionally the rule-set name again
// and is not retained on the Rule (grammar.Dump always re-emits
// "name(name)"); nodes may carry `^` anchor marks and `:var` bindings, an
// optional `[TOKEN]` precedence override follows the node list, and zero or
// more `@walker::func %{ ... %}` semantic action blocks follow that.
func (p *parser) parseRuleDef(ruleSetName string, pos gerrors.Pos) error {
	if _, _, err := p.r.readIdentArg(); err != nil {
		return err
	}
	if err := p.r.expect(')'); err != nil {
		return err
	}
	if err := p.r.expectStr(":="); err != nil {
		return err
	}

	r := &pendingRule{ruleSetName: ruleSetName, pos: pos}

	explicitAnchor := false
	p.r.skipLayout()
	if p.r.peek() == 0x03b5 { // ε, U+03B5, explicit epsilon marker
		p.r.next()
	} else {
		for {
			p.r.skipLayout()
			c := p.r.peek()
			if c == '[' || c == '@' || c == ';' {
				break
			}
			anchored := false
			if c == '^' {
				p.r.next()
				anchored = true
			}
			name, npos := p.r.readIdent()
			if name == "" {
				return gerrors.New(gerrors.InvalidInput, npos, "expected grammar symbol in rule body")
			}
			varName := ""
			p.r.skipLayout()
			if p.r.peek() == ':' {
				p.r.next()
				varName, _ = p.r.readIdent()
			}
			kind := grammar.NodeNonTerminal
			if p.g.IsTerminal(name) {
				kind = grammar.NodeTerminal
			}
			idx := len(r.nodes)
			r.nodes = append(r.nodes, grammar.Node{Kind: kind, Name: name, Var: varName})
			if anchored {
				r.anchor = idx
				explicitAnchor = true
			}
		}
	}

	p.r.skipLayout()
	if p.r.peek() == '[' {
		p.r.next()
		tok, tpos := p.r.readIdent()
		if tok == "" {
			return gerrors.New(gerrors.InvalidInput, tpos, "expected token name in precedence override")
		}
		r.precName = tok
		r.precPos = tpos
		if err := p.r.expect(']'); err != nil {
			return err
		}
	}

	for {
		p.r.skipLayout()
		if p.r.peek() != '@' {
			break
		}
		p.r.next()
		walker, wpos := p.r.readIdent()
		if walker == "" {
			return gerrors.New(gerrors.InvalidInput, wpos, "expected walker name after '@'")
		}
		if err := p.r.expectStr("::"); err != nil {
			return err
		}
		fn, fpos := p.r.readIdent()
		if fn == "" {
			return gerrors.New(gerrors.InvalidInput, fpos, "expected function name")
		}
		body, err := p.readCodeBlock()
		if err != nil {
			return err
		}
		r.Codeblocks = append(r.Codeblocks, &grammar.CodeBlock{Walker: walker, Func: fn, Body: body, Pos: fpos})
	}
	p.r.skipLayout()
	if strings.HasPrefix(peekAhead(p.r, 2), "%{") {
		// a bare (unrouted) %{ ... %} routes to the default walker under
		// this ruleset's own name, a convenience for the common case of
		// one action per rule.
		body, err := p.readCodeBlock()
		if err != nil {
			return err
		}
		r.Codeblocks = append(r.Codeblocks, &grammar.CodeBlock{Walker: p.g.DefaultWalker, Func: ruleSetName, Body: body, Pos: pos})
	}

	if err := p.r.expect(';'); err != nil {
		return err
	}

	r.anchorExplicit = explicitAnchor
	p.pendingRules = append(p.pendingRules, r)
	return nil
}

func peekAhead(r *reader, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteRune(r.peekAt(i))
	}
	return sb.String()
}

// readIdentArg reads a parenthesized rule label, e.g. the "expr" in
// "expr(expr) := ...". It is not semantically significant: grammar.Dump
// always regenerates it as the rule-set's own name.
func (r *reader) readIdentArg() (string, gerrors.Pos, error) {
	name, pos := r.readIdent()
	if name == "" {
		return "", pos, gerrors.New(gerrors.InvalidInput, pos, "expected rule label")
	}
	return name, pos, nil
}

// pendingRule is the front-end's raw parse of one production, kept pending
// until the deferred binding pass resolves its precedence token reference
// and appends it to the named RuleSet (§4.1 "deferred binding passes").
type pendingRule struct {
	ruleSetName    string
	nodes          []grammar.Node
	anchor         int
	anchorExplicit bool
	precName       string
	precPos        gerrors.Pos
	Codeblocks     []*grammar.CodeBlock
	pos            gerrors.Pos
}
