// Package grammar holds the Grammar Model (§3 of SPEC_FULL.md): the
// shared, mutable aggregate that the front-end builds, the lexer and
// parser synthesisers enrich, and the emitter reads. The Grammar
// exclusively owns every entity reachable from it; all cross-references
// are name/id lookups, never ownership (§3 "Ownership").
package grammar

import (
	"sort"

	"github.com/kschwaiger/yantra/internal/gerrors"
	"github.com/kschwaiger/yantra/internal/oset"
)

// Encoding is the character-set mode a Grammar was parsed under (`-c`/
// `%encoding`).
type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingASCII
)

// Grammar is the root aggregate of the entire Grammar Model.
type Grammar struct {
	Namespace string
	Class     string
	StartRule string // default "start"
	Encoding  Encoding

	PCHHeader string
	HdrHeader string
	SrcHeader string
	ClassMembers []ClassMember

	Prologue string
	Epilogue string
	ErrorBlock string

	CheckUnusedTokens bool
	AutoResolve       bool
	WarnResolve       bool
	StdHeader         bool

	// RegexSets holds every declared token in first-declaration order,
	// which seeds precedence numbering (§5 "Ordering guarantees").
	RegexSets   []*RegexSet
	regexByName map[string]*RegexSet

	Fallbacks map[string][]string // primary token -> alternates, from %fallback

	// RuleSets holds every declared non-terminal in first-declaration
	// order, which seeds rule ids.
	RuleSets   []*RuleSet
	rulesByName map[string]*RuleSet

	LexerModes   []*LexerMode
	modesByName  map[string]*LexerMode
	States       []*State // index i has ID i; index 0 is the reserved sink

	Walkers      []*Walker
	walkersByName map[string]*Walker
	DefaultWalker string

	// ItemSets is populated by the LALR synthesiser (§4.3 phase 4); nil
	// until lalr.Build succeeds.
	ItemSets []*ItemSet

	// First/Follow/Nullable are populated by the LALR synthesiser's phase
	// 1 and kept on the Grammar for the emitter and for diagnostics.
	First    map[string]*sortedSet
	Follow   map[string]*sortedSet
	Nullable map[string]bool
}

// ClassMember is one `%class_member T name;` declaration.
type ClassMember struct {
	Type string
	Name string
}

// New returns an empty Grammar with sane defaults (§6 pragma table
// defaults): start rule "start", UTF-8 encoding, auto_resolve and
// std_header on, check_unused_tokens on, warn_resolve off.
func New() *Grammar {
	g := &Grammar{
		StartRule:         "start",
		Encoding:          EncodingUTF8,
		CheckUnusedTokens: true,
		AutoResolve:       true,
		WarnResolve:       false,
		StdHeader:         true,
		regexByName:       map[string]*RegexSet{},
		rulesByName:       map[string]*RuleSet{},
		modesByName:       map[string]*LexerMode{},
		walkersByName:     map[string]*Walker{},
		Fallbacks:         map[string][]string{},
		First:             map[string]*sortedSet{},
		Follow:            map[string]*sortedSet{},
		Nullable:          map[string]bool{},
	}
	// state 0 is the reserved error sink; every mode's real states start
	// at id 1.
	g.States = append(g.States, &State{ID: NilState})
	return g
}

// RegexSet looks up a token's RegexSet by name.
func (g *Grammar) RegexSet(name string) *RegexSet { return g.regexByName[name] }

// EnsureRegexSet returns the existing RegexSet for name, or creates a new
// one with the next available precedence (§3 invariant: "Every RegexSet
// has a unique positive precedence assigned in the order first seen").
func (g *Grammar) EnsureRegexSet(name string, assoc Assoc) *RegexSet {
	if rs, ok := g.regexByName[name]; ok {
		return rs
	}
	rs := &RegexSet{Name: name, Precedence: len(g.RegexSets) + 1, Associativity: assoc}
	g.regexByName[name] = rs
	g.RegexSets = append(g.RegexSets, rs)
	return rs
}

// RuleSet looks up a production's RuleSet by name.
func (g *Grammar) RuleSet(name string) *RuleSet { return g.rulesByName[name] }

// EnsureRuleSet returns the existing RuleSet for name, or creates a new
// empty one.
func (g *Grammar) EnsureRuleSet(name string) *RuleSet {
	if rs, ok := g.rulesByName[name]; ok {
		return rs
	}
	rs := &RuleSet{Name: name}
	g.rulesByName[name] = rs
	g.RuleSets = append(g.RuleSets, rs)
	return rs
}

// Mode looks up a LexerMode by name.
func (g *Grammar) Mode(name string) *LexerMode { return g.modesByName[name] }

// EnsureMode returns the existing LexerMode for name, or creates one with
// a freshly allocated root state.
func (g *Grammar) EnsureMode(name string) *LexerMode {
	if m, ok := g.modesByName[name]; ok {
		return m
	}
	root := g.NewState(name)
	root.Root = true
	m := &LexerMode{Name: name, Root: root.ID}
	g.modesByName[name] = m
	g.LexerModes = append(g.LexerModes, m)
	return m
}

// NewState allocates a fresh State belonging to mode modeName and returns
// it.
func (g *Grammar) NewState(modeName string) *State {
	s := &State{ID: StateID(len(g.States)), ModeName: modeName}
	g.States = append(g.States, s)
	return s
}

// State looks up a State by id. Returns the reserved sink state for
// NilState.
func (g *Grammar) State(id StateID) *State { return g.States[id] }

// Walker looks up a Walker by name.
func (g *Grammar) Walker(name string) *Walker { return g.walkersByName[name] }

// EnsureWalker returns the existing Walker for name, or creates one.
func (g *Grammar) EnsureWalker(name string) *Walker {
	if w, ok := g.walkersByName[name]; ok {
		return w
	}
	w := NewWalker(name)
	g.walkersByName[name] = w
	g.Walkers = append(g.Walkers, w)
	return w
}

// WalkersByName exposes the full name->Walker map for inheritance-chain
// lookups (Walker.ResolveFunc).
func (g *Grammar) WalkersByName() map[string]*Walker { return g.walkersByName }

// Terminals returns every declared token name, in declaration order.
func (g *Grammar) Terminals() []string {
	out := make([]string, 0, len(g.RegexSets))
	for _, rs := range g.RegexSets {
		out = append(out, rs.Name)
	}
	return out
}

// NonTerminals returns every declared rule-set name, in declaration order.
func (g *Grammar) NonTerminals() []string {
	out := make([]string, 0, len(g.RuleSets))
	for _, rs := range g.RuleSets {
		out = append(out, rs.Name)
	}
	return out
}

// IsTerminal reports whether name is a declared token.
func (g *Grammar) IsTerminal(name string) bool {
	_, ok := g.regexByName[name]
	return ok
}

// IsNonTerminal reports whether name is a declared rule-set.
func (g *Grammar) IsNonTerminal(name string) bool {
	_, ok := g.rulesByName[name]
	return ok
}

// AllRules returns every Rule in the grammar, grouped by RuleSet in
// declaration order, flattened in RuleSet-then-rule order. This is the
// iteration order the LALR synthesiser and the emitter rely on for
// reproducibility (§8 "Conflict determinism").
func (g *Grammar) AllRules() []*Rule {
	var out []*Rule
	for _, rs := range g.RuleSets {
		out = append(out, rs.Rules...)
	}
	return out
}

// Validate checks the cross-cutting invariants of §3 that are not already
// enforced by construction, returning the first violation found.
func (g *Grammar) Validate() error {
	if !g.IsNonTerminal(g.StartRule) {
		return gerrors.Newf(gerrors.UnknownStartRule, gerrors.Pos{}, "start rule %q is not defined", g.StartRule)
	}
	for _, rs := range g.RegexSets {
		if rs.Precedence <= 0 {
			return gerrors.Newf(gerrors.InvalidInput, gerrors.Pos{}, "token %q has non-positive precedence %d", rs.Name, rs.Precedence)
		}
	}
	for _, rs := range g.RuleSets {
		for _, r := range rs.Rules {
			if !r.IsEpsilon() && (r.Anchor < 0 || r.Anchor >= len(r.Nodes)) {
				return gerrors.Newf(gerrors.InvalidInput, gerrors.Pos{}, "rule %q has out-of-range anchor %d", r.String(), r.Anchor)
			}
		}
	}
	if g.CheckUnusedTokens {
		for _, rs := range g.RegexSets {
			used := false
			for _, re := range rs.Regexes {
				if re.Unused || re.UseCount() > 0 {
					used = true
				}
			}
			if !used {
				return gerrors.Newf(gerrors.UnusedTokens, gerrors.Pos{}, "token %q is never referenced by a rule", rs.Name)
			}
		}
	}
	return nil
}

// sortedSet is FIRST/FOLLOW's string set: an oset.Set (for O(1) Add/Has)
// whose Elements are sorted rather than returned in insertion order, so
// the emitter and dump produce the same text run to run regardless of the
// order the fixpoint passes happened to discover each symbol in.
type sortedSet struct {
	set *oset.Set
}

func newSortedSet() *sortedSet { return &sortedSet{set: oset.New()} }

// Add adds s to the set and reports whether it was newly added.
func (ss *sortedSet) Add(s string) bool { return ss.set.Add(s) }

func (ss *sortedSet) Has(s string) bool { return ss.set.Has(s) }

func (ss *sortedSet) Elements() []string {
	out := append([]string(nil), ss.set.Elements()...)
	sort.Strings(out)
	return out
}

// EnsureFirst returns the FIRST set for symbol sym, creating an empty one
// if absent.
func (g *Grammar) EnsureFirst(sym string) *sortedSet {
	if s, ok := g.First[sym]; ok {
		return s
	}
	s := newSortedSet()
	g.First[sym] = s
	return s
}

// EnsureFollow returns the FOLLOW set for symbol sym, creating an empty
// one if absent.
func (g *Grammar) EnsureFollow(sym string) *sortedSet {
	if s, ok := g.Follow[sym]; ok {
		return s
	}
	s := newSortedSet()
	g.Follow[sym] = s
	return s
}

// EndOfInput is the distinguished end-of-input terminal appended to every
// start-symbol rule by the front-end's deferred binding pass (§4.1).
const EndOfInput = "$"

// Epsilon is the name of the distinguished empty terminal (§ GLOSSARY).
// The FIRST/FOLLOW fixpoints track nullability separately and do not use
// it, and no table entry is keyed on it.
const Epsilon = ""
