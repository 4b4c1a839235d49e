package frontend

import (
	"github.com/kschwaiger/yantra/internal/gerrors"
	"github.com/kschwaiger/yantra/internal/grammar"
)

// parseTokenDef parses one token definition line, `name op regex ; flags`,
// where op is one of `:=` `:=>` `:==` and name has already been consumed
// by the caller (the dispatcher in parser.go, which needs the identifier
// to decide whether it is looking at a token def or a rule def).
func (p *parser) parseTokenDef(name string, pos gerrors.Pos) error {
	assoc, err := p.readRegexOp()
	if err != nil {
		return err
	}
	tree, err := p.r.parseRegex()
	if err != nil {
		return err
	}
	if err := p.r.expect(';'); err != nil {
		return err
	}

	re := &grammar.Regex{Name: name, Tree: tree, Pos: pos}

	p.r.skipLayout()
	for {
		switch p.r.peek() {
		case '!':
			p.r.next()
			re.Unused = true
			continue
		case '[':
			p.r.next()
			p.r.skipLayout()
			switch p.r.peek() {
			case ']':
				p.r.next()
				re.ResetMode = true
			case '^':
				p.r.next()
				if err := p.r.expect(']'); err != nil {
					return err
				}
				re.PopMode = true
			default:
				mode, modePos := p.r.readIdent()
				if mode == "" {
					return gerrors.New(gerrors.InvalidInput, modePos, "expected mode name")
				}
				if err := p.r.expect(']'); err != nil {
					return err
				}
				re.Mode = mode
			}
			p.r.skipLayout()
			continue
		}
		break
	}

	rs := p.g.EnsureRegexSet(name, assoc)
	if rs.Associativity != assoc && len(rs.Regexes) > 0 {
		return gerrors.Newf(gerrors.InvalidInput, pos, "token %q redeclared with a different associativity operator", name)
	}
	rs.Regexes = append(rs.Regexes, re)
	return nil
}

// readRegexOp consumes one of `:=`, `:=>`, `:==` and reports the
// associativity it denotes.
func (p *parser) readRegexOp() (grammar.Assoc, error) {
	p.r.skipLayout()
	if err := p.r.expect(':'); err != nil {
		return grammar.AssocRight, err
	}
	if err := p.r.expect('='); err != nil {
		return grammar.AssocRight, err
	}
	switch p.r.peek() {
	case '>':
		p.r.next()
		return grammar.AssocLeft, nil
	case '=':
		p.r.next()
		return grammar.AssocNone, nil
	default:
		return grammar.AssocRight, nil
	}
}
