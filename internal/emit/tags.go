package emit

import "strings"

// tagScanState is the char-scanner's own small state machine (§ "Emitter
// state machines: ... one char-scanner substituting TAG(...)"), kept as an
// explicit enum rather than built on regexp so the generator has no
// runtime dependency on anything beyond string indexing here.
type tagScanState int

const (
	scanLiteral tagScanState = iota
	scanMaybeTag
	scanInsideTag
	scanInsideTag2Name
	scanInsideTag2Suffix
)

// substituteTags replaces every `TAG(key)` with dict[key] and every
// `TAG2(name, suffix)` with dict[name]+suffix, leaving unknown keys as the
// literal empty string substitution (a grammar author referencing a key
// outside the fixed dictionary gets silence, not a crash, matching how the
// rest of the emitter treats template text as already-validated).
func substituteTags(line string, dict map[string]string) string {
	var out strings.Builder
	state := scanLiteral
	var tokBuf, nameBuf, suffixBuf strings.Builder

	i := 0
	for i < len(line) {
		c := line[i]
		switch state {
		case scanLiteral:
			if strings.HasPrefix(line[i:], "TAG2(") {
				state = scanInsideTag2Name
				nameBuf.Reset()
				suffixBuf.Reset()
				i += len("TAG2(")
				continue
			}
			if strings.HasPrefix(line[i:], "TAG(") {
				state = scanInsideTag
				tokBuf.Reset()
				i += len("TAG(")
				continue
			}
			out.WriteByte(c)
			i++
		case scanInsideTag:
			if c == ')' {
				out.WriteString(dict[strings.TrimSpace(tokBuf.String())])
				state = scanLiteral
				i++
				continue
			}
			tokBuf.WriteByte(c)
			i++
		case scanInsideTag2Name:
			if c == ',' {
				state = scanInsideTag2Suffix
				i++
				continue
			}
			nameBuf.WriteByte(c)
			i++
		case scanInsideTag2Suffix:
			if c == ')' {
				out.WriteString(dict[strings.TrimSpace(nameBuf.String())])
				out.WriteString(strings.TrimSpace(suffixBuf.String()))
				state = scanLiteral
				i++
				continue
			}
			suffixBuf.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// baseDict builds the fixed name-value dictionary every codeblock and
// template line may reference (§ "Codeblock expansion"): NSNAME, CLSNAME,
// START_RULE, START_RULE_NAME, MAX_REPEAT_COUNT, AST, plus the quoted
// forms Q_NSNAME, Q_CLSNAME and Q_ASTNS. The dictionary has no TOKEN or
// WALKER entry.
func baseDict(namespace, class, startRule string, maxRepeat int, astType string) map[string]string {
	return map[string]string{
		"NSNAME":           namespace,
		"Q_NSNAME":         quoteIdent(namespace),
		"CLSNAME":          class,
		"Q_CLSNAME":        quoteIdent(class),
		"Q_ASTNS":          quoteIdent(namespace + "ast"),
		"START_RULE":       startRule,
		"START_RULE_NAME":  startRule,
		"MAX_REPEAT_COUNT": itoa(maxRepeat),
		"AST":              astType,
	}
}

func quoteIdent(s string) string { return `"` + s + `"` }

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}
