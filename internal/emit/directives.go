package emit

import (
	"strings"

	"github.com/kschwaiger/yantra/internal/gerrors"
	"github.com/kschwaiger/yantra/internal/grammar"
)

// directiveKind enumerates the five line-prefix directives the template
// scanner recognises (§ "Directive line scanner"). Lines not matching the
// "//@" prefix are ordinary template text, copied through TAG substitution.
type directiveKind int

const (
	dirNone directiveKind = iota
	dirEnter
	dirLeave
	dirSegment
	dirInclude
	dirTarget
)

const directivePrefix = "//@"

func parseDirectiveLine(line string) (kind directiveKind, arg string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, directivePrefix) {
		return dirNone, "", false
	}
	rest := trimmed[len(directivePrefix):]
	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return dirNone, "", false
	}
	keyword, arg := rest[:colon], rest[colon+1:]
	switch keyword {
	case "ENTER":
		return dirEnter, arg, true
	case "LEAVE":
		return dirLeave, arg, true
	case "SEGMENT":
		return dirSegment, arg, true
	case "INCLUDE":
		return dirInclude, arg, true
	case "TARGET":
		return dirTarget, arg, true
	default:
		return dirNone, "", false
	}
}

// Options controls output layout and diagnostic trimmings (§ "Output
// layout").
type Options struct {
	Amalgamated  bool
	SuppressLineMarkers bool
}

// conditions evaluates the named predicate an ENTER/LEAVE block gates on.
func conditions(name string, g *grammar.Grammar, opt Options) bool {
	switch {
	case name == "amalgamated":
		return opt.Amalgamated
	case name == "walkers":
		return len(g.Walkers) > 0
	case name == "std_header":
		return g.StdHeader
	case name == "ascii":
		return g.Encoding == grammar.EncodingASCII
	case name == "utf8":
		return g.Encoding == grammar.EncodingUTF8
	case strings.HasPrefix(name, "walker:"):
		return g.Walker(strings.TrimPrefix(name, "walker:")) != nil
	default:
		return true
	}
}

// process runs the line-scanner state machine over tmpl, writing to
// separate header/source builders and switching between them on
// TARGET:SOURCE (only meaningful when opt.Amalgamated is false, since an
// amalgamated build writes one file and never switches). It carries a
// stack of ENTER/LEAVE activity so a block nested inside an inactive one
// also stays suppressed.
func process(tmpl string, g *grammar.Grammar, opt Options, segments map[string]string, includes map[string]string, dict map[string]string) (header, source string, err error) {
	var headerBuf, sourceBuf strings.Builder
	cur := &headerBuf

	type frame struct {
		name   string
		active bool
	}
	stack := []frame{{name: "<root>", active: true}}
	activeNow := func() bool {
		for _, f := range stack {
			if !f.active {
				return false
			}
		}
		return true
	}

	for _, line := range strings.Split(tmpl, "\n") {
		kind, arg, ok := parseDirectiveLine(line)
		if !ok {
			if activeNow() {
				cur.WriteString(substituteTags(line, dict))
				cur.WriteByte('\n')
			}
			continue
		}
		switch kind {
		case dirEnter:
			stack = append(stack, frame{name: arg, active: conditions(arg, g, opt)})
		case dirLeave:
			if len(stack) < 2 || stack[len(stack)-1].name != arg {
				return "", "", gerrors.Newf(gerrors.UnknownEBlock, gerrors.Pos{}, "unmatched LEAVE:%s in template", arg)
			}
			stack = stack[:len(stack)-1]
		case dirSegment:
			if !activeNow() {
				continue
			}
			body, ok := segments[arg]
			if !ok {
				return "", "", gerrors.Newf(gerrors.UnknownSegment, gerrors.Pos{}, "template references undefined segment %q", arg)
			}
			cur.WriteString(body)
		case dirInclude:
			if !activeNow() {
				continue
			}
			body, ok := includes[arg]
			if !ok {
				return "", "", gerrors.Newf(gerrors.UnknownInclude, gerrors.Pos{}, "template references undefined include %q", arg)
			}
			cur.WriteString(substituteTags(body, dict))
		case dirTarget:
			if !activeNow() {
				continue
			}
			if arg == "SOURCE" && !opt.Amalgamated {
				cur = &sourceBuf
			}
		}
	}

	if len(stack) != 1 {
		return "", "", gerrors.Newf(gerrors.UnknownEBlock, gerrors.Pos{}, "template has %d unclosed ENTER block(s)", len(stack)-1)
	}

	return headerBuf.String(), sourceBuf.String(), nil
}
