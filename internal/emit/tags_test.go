package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_substituteTags_replacesSingleTag(t *testing.T) {
	dict := map[string]string{"CLSNAME": "Calc"}
	got := substituteTags(`type TAG(CLSNAME)Lexer struct{}`, dict)
	assert.Equal(t, `type CalcLexer struct{}`, got)
}

func Test_substituteTags_replacesTag2WithSuffix(t *testing.T) {
	dict := map[string]string{"CLSNAME": "Calc"}
	got := substituteTags(`func New TAG2(CLSNAME, Parser)()`, dict)
	assert.Equal(t, `func New CalcParser()`, got)
}

func Test_substituteTags_unknownKeyYieldsEmptyString(t *testing.T) {
	got := substituteTags(`x := "TAG(NOPE)"`, map[string]string{})
	assert.Equal(t, `x := ""`, got)
}

func Test_substituteTags_leavesPlainTextUntouched(t *testing.T) {
	got := substituteTags(`// nothing to replace here`, map[string]string{"A": "b"})
	assert.Equal(t, `// nothing to replace here`, got)
}

func Test_itoa_handlesZeroNegativeAndPositive(t *testing.T) {
	assert.Equal(t, "0", itoa(0))
	assert.Equal(t, "42", itoa(42))
	assert.Equal(t, "-7", itoa(-7))
}

func Test_baseDict_quotesIdentifiers(t *testing.T) {
	dict := baseDict("calc", "Calc", "expr", 4, "ast.Node")
	assert.Equal(t, `"calc"`, dict["Q_NSNAME"])
	assert.Equal(t, `"Calc"`, dict["Q_CLSNAME"])
	assert.Equal(t, "4", dict["MAX_REPEAT_COUNT"])
	assert.Equal(t, "expr", dict["START_RULE"])
}
