// Package frontend implements the grammar front-end (§4.1): a hand-written
// recursive-descent parser with a one-token lookahead lexer over the
// grammar source file, producing a *grammar.Grammar.
package frontend

import (
	"github.com/kschwaiger/yantra/internal/gerrors"
)

// reader is a rune-at-a-time cursor over a grammar source held entirely in
// memory (grammar files are small; there is no benefit to the teacher's
// streaming regexReader here since the front-end never runs a regexp
// engine over the source — the regex sub-grammar in §4.1 is parsed by
// hand, one rune at a time, same as everything else).
type reader struct {
	src  []rune
	pos  int
	file string
	line int
	col  int
}

func newReader(src, file string) *reader {
	return &reader{src: []rune(src), file: file, line: 1, col: 1}
}

func (r *reader) eof() bool { return r.pos >= len(r.src) }

func (r *reader) peek() rune {
	if r.eof() {
		return 0
	}
	return r.src[r.pos]
}

func (r *reader) peekAt(offset int) rune {
	if r.pos+offset >= len(r.src) {
		return 0
	}
	return r.src[r.pos+offset]
}

func (r *reader) next() rune {
	c := r.peek()
	r.pos++
	if c == '\n' {
		r.line++
		r.col = 1
	} else if c != 0 {
		r.col++
	}
	return c
}

func (r *reader) posHere() gerrors.Pos {
	return gerrors.Pos{Line: r.line, Col: r.col, File: r.file}
}

// skipLayout skips whitespace and comments, which may nest (§4.1 "Multi-
// line comments nest").
func (r *reader) skipLayout() {
	for {
		c := r.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			r.next()
		case c == '/' && r.peekAt(1) == '/':
			for !r.eof() && r.peek() != '\n' {
				r.next()
			}
		case c == '/' && r.peekAt(1) == '*':
			r.skipBlockComment()
		default:
			return
		}
	}
}

func (r *reader) skipBlockComment() {
	depth := 0
	for !r.eof() {
		if r.peek() == '/' && r.peekAt(1) == '*' {
			r.next()
			r.next()
			depth++
			continue
		}
		if r.peek() == '*' && r.peekAt(1) == '/' {
			r.next()
			r.next()
			depth--
			if depth == 0 {
				return
			}
			continue
		}
		r.next()
	}
}

// expect consumes c if it is next (after skipping layout), returning an
// error otherwise.
func (r *reader) expect(c rune) error {
	r.skipLayout()
	if r.peek() != c {
		return gerrors.Newf(gerrors.InvalidInput, r.posHere(), "expected %q, found %q", c, r.peek())
	}
	r.next()
	return nil
}

// expectStr consumes s literally if it is next (after skipping layout).
func (r *reader) expectStr(s string) error {
	r.skipLayout()
	for _, c := range s {
		if r.peek() != c {
			return gerrors.Newf(gerrors.InvalidInput, r.posHere(), "expected %q", s)
		}
		r.next()
	}
	return nil
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c rune) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// readIdent reads a bare identifier (used for pragma names, token/rule
// names, mode names, walker names).
func (r *reader) readIdent() (string, gerrors.Pos) {
	r.skipLayout()
	pos := r.posHere()
	start := r.pos
	if !isIdentStart(r.peek()) {
		return "", pos
	}
	r.next()
	for isIdentCont(r.peek()) {
		r.next()
	}
	return string(r.src[start:r.pos]), pos
}

// readUntil reads raw text (used for free-form type expressions and
// argument lists) up to but not including any rune in stops, honoring
// nested parens/brackets/braces so a stop character inside a nested group
// doesn't end the scan early.
func (r *reader) readUntil(stops string) string {
	start := r.pos
	depth := 0
	for !r.eof() {
		c := r.peek()
		if depth == 0 && containsRune(stops, c) {
			break
		}
		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		}
		r.next()
	}
	return string(r.src[start:r.pos])
}

func containsRune(s string, c rune) bool {
	for _, r := range s {
		if r == c {
			return true
		}
	}
	return false
}
