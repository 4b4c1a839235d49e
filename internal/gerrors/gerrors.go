// Package gerrors defines the single uniform failure type used across every
// phase of the generator. Every validation point in the front-end, the
// lexer synthesiser, the LALR synthesiser, and the emitter fails with a
// *Error carrying a closed Kind, a source position, and a human message.
//
// The shape is modeled on tqerrors.interpreterError: an exported struct
// with unexported fields, constructor functions, an Error() string, and an
// Unwrap() for a wrapped cause.
package gerrors

import (
	"errors"
	"fmt"
)

// Kind is a closed enumeration of the failure kinds a generation run can
// produce. Do not add ad-hoc string errors for new failure modes outside
// this set; add a Kind instead so callers can switch on it.
type Kind string

const (
	// input-syntactic
	InvalidInput         Kind = "InvalidInput"
	InvalidRange         Kind = "InvalidRange"
	InvalidRegexHexChar  Kind = "InvalidRegexHexChar"
	InvalidRegexEscChar  Kind = "InvalidRegexEscChar"
	NonASCIIInput        Kind = "NonASCIIInput"

	// structural
	EmptyToken         Kind = "EmptyToken"
	MultipleEmptyRules Kind = "MultipleEmptyRules"
	DuplicateCodeblock Kind = "DuplicateCodeblock"
	DuplicateFunction  Kind = "DuplicateFunction"
	InvalidRuleName    Kind = "InvalidRuleName"

	// semantic
	UnknownWalker  Kind = "UnknownWalker"
	UnknownPragma  Kind = "UnknownPragma"
	UnknownRuleset Kind = "UnknownRuleset"

	// analytic
	ShiftReduceConflict  Kind = "ShiftReduceConflict"
	ReduceReduceConflict Kind = "ReduceReduceConflict"
	GotoConflict         Kind = "GotoConflict"
	UnusedTokens         Kind = "UnusedTokens"
	UnknownStartRule     Kind = "UnknownStartRule"

	// emission
	UnknownSegment  Kind = "UnknownSegment"
	UnknownInclude  Kind = "UnknownInclude"
	UnknownEBlock   Kind = "UnknownEBlock"
	ErrorOpeningSrc Kind = "ErrorOpeningSrc"
)

// Pos is a 1-indexed source position, the file position carried by every
// Error and by every generated-runtime error the emitted code produces.
type Pos struct {
	Line int
	Col  int
	File string
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Error is the uniform failure type produced by every phase of the
// generator.
type Error struct {
	kind Kind
	pos  Pos
	msg  string
	wrap error
}

// New returns a new Error of the given kind at pos with the given message.
func New(kind Kind, pos Pos, msg string) *Error {
	return &Error{kind: kind, pos: pos, msg: msg}
}

// Newf is New with fmt.Sprintf-style formatting of msg.
func Newf(kind Kind, pos Pos, format string, a ...interface{}) *Error {
	return New(kind, pos, fmt.Sprintf(format, a...))
}

// Wrap is New but additionally records cause as the wrapped error.
func Wrap(kind Kind, pos Pos, msg string, cause error) *Error {
	return &Error{kind: kind, pos: pos, msg: msg, wrap: cause}
}

func (e *Error) Error() string {
	if e.pos.File != "" || e.pos.Line != 0 {
		return fmt.Sprintf("%s: %s: %s", e.pos.String(), e.kind, e.msg)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

// Kind returns the closed failure kind of e.
func (e *Error) Kind() Kind {
	return e.kind
}

// Pos returns the source position e occurred at.
func (e *Error) Pos() Pos {
	return e.pos
}

// Unwrap returns the error e wraps, if any.
func (e *Error) Unwrap() error {
	return e.wrap
}

// Is reports whether err is a *Error of the given kind, following Unwrap
// chains via errors.As: the first *Error found along the chain decides.
func Is(err error, kind Kind) bool {
	var ge *Error
	if !errors.As(err, &ge) {
		return false
	}
	return ge.kind == kind
}
