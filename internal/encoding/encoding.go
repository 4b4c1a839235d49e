// Package encoding enforces the grammar source's declared character
// encoding (§6 "%encoding utf8|ascii"). UTF-8 sources pass through
// unchanged; ASCII-declared sources are NFC-normalized and then walked
// rune by rune so a stray non-ASCII character (a smart quote pasted from a
// spec document, a non-breaking space) fails fast with a source position
// instead of surfacing as a confusing downstream lex error.
package encoding

import (
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kschwaiger/yantra/internal/gerrors"
)

// ValidateASCII normalizes src to NFC and verifies every rune is in the
// ASCII range, returning the normalized source or the first violation's
// *gerrors.Error.
func ValidateASCII(src, file string) (string, error) {
	normalized, _, err := transform.String(norm.NFC, src)
	if err != nil {
		return "", gerrors.Wrap(gerrors.NonASCIIInput, gerrors.Pos{File: file}, "could not normalize grammar source", err)
	}

	line, col := 1, 1
	for _, r := range normalized {
		if r > unicode.MaxASCII {
			return "", gerrors.Newf(gerrors.NonASCIIInput, gerrors.Pos{File: file, Line: line, Col: col},
				"grammar declares %%encoding ascii but source contains non-ASCII rune %q", r)
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return normalized, nil
}
