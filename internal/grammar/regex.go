package grammar

import "github.com/kschwaiger/yantra/internal/gerrors"

// Assoc is the associativity declared for a RegexSet via `:=`/`:=>`/`:==`.
type Assoc int

const (
	AssocRight Assoc = iota // `:=`
	AssocLeft                // `:=>`
	AssocNone                // `:==`
)

func (a Assoc) String() string {
	switch a {
	case AssocRight:
		return "right"
	case AssocLeft:
		return "left"
	default:
		return "none"
	}
}

// Regex is one named lexical token definition: a name, the parsed regex
// tree, and the flags carried on its declaration line.
type Regex struct {
	Name     string
	Tree     *Atom
	Unused   bool // trailing `!`: legitimately allowed zero uses
	Mode     string // `[mode]` directive: mode to enter after matching, "" for none
	PopMode  bool   // `[^]`: pop the mode stack
	ResetMode bool  // `[]`: reset to root mode
	Pos      gerrors.Pos

	useCount int
	states   []StateID // states this regex contributed transitions to (§3 invariant)
}

// MarkUsed increments the use count for this token, including uses via
// %fallback cross-references.
func (r *Regex) MarkUsed() { r.useCount++ }

// UseCount returns how many times this token was referenced by a grammar
// rule (directly or via %fallback).
func (r *Regex) UseCount() int { return r.useCount }

// RegexSet is all Regex definitions sharing a name, plus the set-level
// precedence and associativity required by §3 ("carries precedence and
// associativity").
type RegexSet struct {
	Name        string
	Regexes     []*Regex
	Precedence  int // unique positive, assigned in first-seen order
	Associativity Assoc
}

// String returns the token name.
func (rs *RegexSet) String() string {
	return rs.Name
}
