package frontend

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	mdparser "github.com/gomarkdown/markdown/parser"

	"github.com/kschwaiger/yantra/internal/gerrors"
	"github.com/kschwaiger/yantra/internal/grammar"
)

// parser holds the state threaded through one Parse call: the rune cursor,
// the Grammar under construction, the lexer mode most recently named by
// %lexer_mode (new token definitions with no explicit `[mode]` suffix
// belong to it), and the two deferred-binding worklists populated while
// scanning and drained by bind() once the whole file has been read.
type parser struct {
	r    *reader
	g    *grammar.Grammar
	file string

	curMode string

	pendingFuncs []*grammar.FunctionSig
	pendingRules []*pendingRule
}

// Parse reads a grammar source file's contents and builds a *grammar.Grammar,
// or the first gerrors.Error encountered. file is used only for diagnostic
// positions.
func Parse(src, file string) (*grammar.Grammar, error) {
	p := &parser{r: newReader(src, file), g: grammar.New(), file: file}
	if err := p.parseTop(); err != nil {
		return nil, err
	}
	if err := p.bind(); err != nil {
		return nil, err
	}
	if err := p.g.Validate(); err != nil {
		return nil, err
	}
	return p.g, nil
}

// ParseMarkdown extracts the fenced ```yantra code blocks from a literate
// grammar written in Markdown (the `-f` CLI flag naming a `.md` source),
// concatenates their contents in document order, and parses the result as
// an ordinary grammar source. Everything outside fenced yantra blocks is
// prose and is discarded.
func ParseMarkdown(src []byte, file string) (*grammar.Grammar, error) {
	extracted, err := extractYantraBlocks(src)
	if err != nil {
		return nil, err
	}
	return Parse(extracted, file)
}

func extractYantraBlocks(src []byte) (string, error) {
	p := mdparser.NewWithExtensions(mdparser.CommonExtensions | mdparser.FencedCode)
	doc := p.Parse(src)

	var sb strings.Builder
	ast.WalkFunc(doc, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		code, ok := n.(*ast.CodeBlock)
		if !ok {
			return ast.GoToNext
		}
		info := string(bytes.ToLower(bytes.TrimSpace(code.Info)))
		if info != "yantra" {
			return ast.GoToNext
		}
		sb.Write(code.Literal)
		sb.WriteByte('\n')
		return ast.GoToNext
	})

	if sb.Len() == 0 {
		return "", gerrors.New(gerrors.ErrorOpeningSrc, gerrors.Pos{}, "no ```yantra fenced blocks found in literate source")
	}
	return sb.String(), nil
}

func (p *parser) parseTop() error {
	for {
		p.r.skipLayout()
		if p.r.eof() {
			return nil
		}
		if p.r.peek() == '%' {
			p.r.next()
			if err := p.parsePragma(); err != nil {
				return err
			}
			continue
		}

		name, pos := p.r.readIdent()
		if name == "" {
			return gerrors.Newf(gerrors.InvalidInput, pos, "expected pragma, token, or rule definition, found %q", p.r.peek())
		}
		p.r.skipLayout()
		if p.r.peek() == '(' {
			p.r.next()
			if err := p.parseRuleDef(name, pos); err != nil {
				return err
			}
		} else {
			if err := p.parseTokenDef(name, pos); err != nil {
				return err
			}
		}
	}
}
