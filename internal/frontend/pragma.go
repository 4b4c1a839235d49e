package frontend

import (
	"strings"

	"github.com/kschwaiger/yantra/internal/gerrors"
	"github.com/kschwaiger/yantra/internal/grammar"
)

// parsePragma parses one `%name ...;` form. The leading `%` has already
// been consumed by the caller.
func (p *parser) parsePragma() error {
	name, pos := p.r.readIdent()
	if name == "" {
		return gerrors.New(gerrors.InvalidInput, pos, "expected pragma name after '%'")
	}

	switch name {
	case "namespace":
		v, err := p.readArgIdent()
		if err != nil {
			return err
		}
		p.g.Namespace = v
	case "class":
		v, err := p.readArgIdent()
		if err != nil {
			return err
		}
		p.g.Class = v
	case "start":
		v, err := p.readArgIdent()
		if err != nil {
			return err
		}
		p.g.StartRule = v
	case "encoding":
		v, err := p.readArgIdent()
		if err != nil {
			return err
		}
		switch v {
		case "utf8":
			p.g.Encoding = grammar.EncodingUTF8
		case "ascii":
			p.g.Encoding = grammar.EncodingASCII
		default:
			return gerrors.Newf(gerrors.InvalidInput, pos, "unknown encoding %q", v)
		}
	case "pch_header":
		v, err := p.readArgString()
		if err != nil {
			return err
		}
		p.g.PCHHeader = v
	case "hdr_header":
		v, err := p.readArgString()
		if err != nil {
			return err
		}
		p.g.HdrHeader = v
	case "src_header":
		v, err := p.readArgString()
		if err != nil {
			return err
		}
		p.g.SrcHeader = v
	case "class_member":
		return p.parseClassMember()
	case "walkers":
		return p.parseWalkersDecl()
	case "default_walker":
		v, err := p.readArgIdent()
		if err != nil {
			return err
		}
		p.g.DefaultWalker = v
	case "walker_output":
		return p.parseWalkerOutput()
	case "walker_traversal":
		return p.parseWalkerTraversal()
	case "members":
		return p.parseMembers()
	case "function":
		return p.parseFunction()
	case "left":
		return p.parseAssocDecl(grammar.AssocLeft)
	case "right":
		return p.parseAssocDecl(grammar.AssocRight)
	case "token":
		return p.parseAssocDecl(grammar.AssocNone)
	case "fallback":
		return p.parseFallback()
	case "lexer_mode":
		v, err := p.readArgIdent()
		if err != nil {
			return err
		}
		p.g.EnsureMode(v)
		p.curMode = v
	case "prologue":
		v, err := p.readCodeBlock()
		if err != nil {
			return err
		}
		p.g.Prologue = v
	case "epilogue":
		v, err := p.readCodeBlock()
		if err != nil {
			return err
		}
		p.g.Epilogue = v
	case "error":
		v, err := p.readCodeBlock()
		if err != nil {
			return err
		}
		p.g.ErrorBlock = v
	case "check_unused_tokens":
		v, err := p.readArgBool()
		if err != nil {
			return err
		}
		p.g.CheckUnusedTokens = v
	case "auto_resolve":
		v, err := p.readArgBool()
		if err != nil {
			return err
		}
		p.g.AutoResolve = v
	case "warn_resolve":
		v, err := p.readArgBool()
		if err != nil {
			return err
		}
		p.g.WarnResolve = v
	case "std_header":
		v, err := p.readArgBool()
		if err != nil {
			return err
		}
		p.g.StdHeader = v
	default:
		return gerrors.Newf(gerrors.UnknownPragma, pos, "unknown pragma %%%s", name)
	}
	return p.r.expect(';')
}

func (p *parser) readArgIdent() (string, error) {
	v, pos := p.r.readIdent()
	if v == "" {
		return "", gerrors.New(gerrors.InvalidInput, pos, "expected identifier argument")
	}
	return v, nil
}

func (p *parser) readArgBool() (bool, error) {
	v, err := p.readArgIdent()
	if err != nil {
		return false, err
	}
	return v == "on", nil
}

func (p *parser) readArgString() (string, error) {
	p.r.skipLayout()
	if err := p.r.expect('"'); err != nil {
		return "", err
	}
	s := p.r.readUntil("\"")
	if err := p.r.expect('"'); err != nil {
		return "", err
	}
	return s, nil
}

// readCodeBlock reads a `%{ ... %}` body verbatim, tracking nested `%{`
// so a user code block may itself contain the literal text "%{" without
// ending prematurely.
func (p *parser) readCodeBlock() (string, error) {
	p.r.skipLayout()
	if err := p.r.expectStr("%{"); err != nil {
		return "", err
	}
	var sb strings.Builder
	depth := 1
	for !p.r.eof() {
		if p.r.peek() == '%' && p.r.peekAt(1) == '{' {
			p.r.next()
			p.r.next()
			depth++
			sb.WriteString("%{")
			continue
		}
		if p.r.peek() == '%' && p.r.peekAt(1) == '}' {
			p.r.next()
			p.r.next()
			depth--
			if depth == 0 {
				break
			}
			sb.WriteString("%}")
			continue
		}
		sb.WriteRune(p.r.next())
	}
	return sb.String(), nil
}

func (p *parser) parseClassMember() error {
	typeExpr := p.r.readUntil(";")
	parts := strings.Fields(typeExpr)
	if len(parts) < 2 {
		return gerrors.New(gerrors.InvalidInput, p.r.posHere(), "malformed %class_member")
	}
	name := parts[len(parts)-1]
	typ := strings.TrimSpace(strings.TrimSuffix(typeExpr, name))
	p.g.ClassMembers = append(p.g.ClassMembers, grammar.ClassMember{Type: typ, Name: name})
	return nil
}

func (p *parser) parseWalkersDecl() error {
	for {
		p.r.skipLayout()
		if p.r.peek() == ';' {
			return nil
		}
		name, pos := p.r.readIdent()
		if name == "" {
			return gerrors.New(gerrors.InvalidInput, pos, "expected walker name")
		}
		w := p.g.EnsureWalker(name)
		p.r.skipLayout()
		if p.r.peek() == '(' {
			p.r.next()
			parent, pos := p.r.readIdent()
			if parent == "" {
				return gerrors.New(gerrors.InvalidInput, pos, "expected parent walker name")
			}
			w.Parent = parent
			if err := p.r.expect(')'); err != nil {
				return err
			}
		}
	}
}

func (p *parser) parseWalkerOutput() error {
	name, err := p.readArgIdent()
	if err != nil {
		return err
	}
	if err := p.r.expectStr("text_file"); err != nil {
		return err
	}
	ext, err := p.readArgIdent()
	if err != nil {
		return err
	}
	w := p.g.EnsureWalker(name)
	w.OutputText = true
	w.OutputExt = ext
	return nil
}

func (p *parser) parseWalkerTraversal() error {
	name, err := p.readArgIdent()
	if err != nil {
		return err
	}
	kind, err := p.readArgIdent()
	if err != nil {
		return err
	}
	w := p.g.EnsureWalker(name)
	switch kind {
	case "manual":
		w.Traversal = grammar.TraversalManual
	case "top_down":
		w.Traversal = grammar.TraversalTopDown
	default:
		return gerrors.Newf(gerrors.InvalidInput, p.r.posHere(), "unknown traversal discipline %q", kind)
	}
	return nil
}

func (p *parser) parseMembers() error {
	name, err := p.readArgIdent()
	if err != nil {
		return err
	}
	body, err := p.readCodeBlock()
	if err != nil {
		return err
	}
	w := p.g.EnsureWalker(name)
	w.Members = body
	return nil
}

// parseFunction parses `%function rs Walker::fn(args) -> type;` or
// `%function rs -> type;` (no walker/fn names: applies to the default
// walker with an autogenerated dispatch name).
func (p *parser) parseFunction() error {
	ruleSet, pos := p.r.readIdent()
	if ruleSet == "" {
		return gerrors.New(gerrors.InvalidInput, pos, "expected ruleset name in %function")
	}

	sig := &grammar.FunctionSig{RuleSet: ruleSet, Pos: pos}
	p.r.skipLayout()
	if p.r.peek() != '-' {
		walker, _ := p.r.readIdent()
		if err := p.r.expectStr("::"); err != nil {
			return err
		}
		fn, fnPos := p.r.readIdent()
		if fn == "" {
			return gerrors.New(gerrors.InvalidInput, fnPos, "expected function name")
		}
		sig.Walker = walker
		sig.Func = fn
		if p.r.peek() == '(' {
			p.r.next()
			args := p.r.readUntil(")")
			sig.Args = splitArgs(args)
			if err := p.r.expect(')'); err != nil {
				return err
			}
		}
	} else {
		sig.Walker = p.g.DefaultWalker
		sig.Func = ruleSet
	}

	p.r.skipLayout()
	if p.r.peek() == '-' && p.r.peekAt(1) == '>' {
		p.r.next()
		p.r.next()
		if p.r.peek() == '>' {
			p.r.next()
			sig.Autowalk = true
		}
		ret := strings.TrimSpace(p.r.readUntil(";"))
		sig.Return = ret
	}

	p.pendingFuncs = append(p.pendingFuncs, sig)
	return nil
}

func splitArgs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (p *parser) parseAssocDecl(assoc grammar.Assoc) error {
	for {
		p.r.skipLayout()
		if p.r.peek() == ';' {
			return nil
		}
		name, pos := p.r.readIdent()
		if name == "" {
			return gerrors.New(gerrors.InvalidInput, pos, "expected token name")
		}
		rs := p.g.EnsureRegexSet(name, assoc)
		rs.Associativity = assoc
	}
}

func (p *parser) parseFallback() error {
	primary, pos := p.r.readIdent()
	if primary == "" {
		return gerrors.New(gerrors.InvalidInput, pos, "expected primary token name in %fallback")
	}
	var alts []string
	for {
		p.r.skipLayout()
		if p.r.peek() == ';' {
			break
		}
		alt, altPos := p.r.readIdent()
		if alt == "" {
			return gerrors.New(gerrors.InvalidInput, altPos, "expected alternate token name in %fallback")
		}
		alts = append(alts, alt)
	}
	p.g.Fallbacks[primary] = append(p.g.Fallbacks[primary], alts...)
	return nil
}
