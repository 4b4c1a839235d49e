package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kschwaiger/yantra/internal/grammar"
)

func Test_parseDirectiveLine_recognizesAllFiveKinds(t *testing.T) {
	cases := []struct {
		line     string
		wantKind directiveKind
		wantArg  string
	}{
		{"//@ENTER:walkers", dirEnter, "walkers"},
		{"//@LEAVE:walkers", dirLeave, "walkers"},
		{"//@SEGMENT:astNodeDecls", dirSegment, "astNodeDecls"},
		{"//@INCLUDE:license", dirInclude, "license"},
		{"//@TARGET:SOURCE", dirTarget, "SOURCE"},
		{"plain text", dirNone, ""},
	}
	for _, c := range cases {
		kind, arg, ok := parseDirectiveLine(c.line)
		if c.wantKind == dirNone {
			assert.False(t, ok)
			continue
		}
		require.True(t, ok)
		assert.Equal(t, c.wantKind, kind)
		assert.Equal(t, c.wantArg, arg)
	}
}

func Test_process_splitsHeaderAndSourceOnTarget(t *testing.T) {
	g := grammar.New()
	tmpl := "package TAG(NSNAME)\n//@TARGET:SOURCE\nfunc main() {}\n"

	header, source, err := process(tmpl, g, Options{Amalgamated: false}, nil, nil, map[string]string{"NSNAME": "calc"})
	require.NoError(t, err)
	assert.Contains(t, header, "package calc")
	assert.Contains(t, source, "func main()")
}

func Test_process_amalgamatedIgnoresTarget(t *testing.T) {
	g := grammar.New()
	tmpl := "package TAG(NSNAME)\n//@TARGET:SOURCE\nfunc main() {}\n"

	header, source, err := process(tmpl, g, Options{Amalgamated: true}, nil, nil, map[string]string{"NSNAME": "calc"})
	require.NoError(t, err)
	assert.Contains(t, header, "func main()")
	assert.Empty(t, source)
}

func Test_process_enterBlockSuppressedWhenConditionFalse(t *testing.T) {
	g := grammar.New() // no walkers registered
	tmpl := "//@ENTER:walkers\nshould not appear\n//@LEAVE:walkers\nalways here\n"

	header, _, err := process(tmpl, g, Options{}, nil, nil, map[string]string{})
	require.NoError(t, err)
	assert.NotContains(t, header, "should not appear")
	assert.Contains(t, header, "always here")
}

func Test_process_enterBlockKeptWhenConditionTrue(t *testing.T) {
	g := grammar.New()
	g.EnsureWalker("DefaultWalker")
	tmpl := "//@ENTER:walkers\nwalker code\n//@LEAVE:walkers\n"

	header, _, err := process(tmpl, g, Options{}, nil, nil, map[string]string{})
	require.NoError(t, err)
	assert.Contains(t, header, "walker code")
}

func Test_process_segmentSubstitution(t *testing.T) {
	g := grammar.New()
	tmpl := "//@SEGMENT:body\n"
	segments := map[string]string{"body": "type X struct{}\n"}

	header, _, err := process(tmpl, g, Options{}, segments, nil, map[string]string{})
	require.NoError(t, err)
	assert.Contains(t, header, "type X struct{}")
}

func Test_process_unknownSegmentErrors(t *testing.T) {
	g := grammar.New()
	_, _, err := process("//@SEGMENT:missing\n", g, Options{}, map[string]string{}, nil, map[string]string{})
	assert.Error(t, err)
}

func Test_process_mismatchedLeaveErrors(t *testing.T) {
	g := grammar.New()
	_, _, err := process("//@LEAVE:walkers\n", g, Options{}, nil, nil, map[string]string{})
	assert.Error(t, err)
}

func Test_process_unclosedEnterErrors(t *testing.T) {
	g := grammar.New()
	_, _, err := process("//@ENTER:walkers\n", g, Options{}, nil, nil, map[string]string{})
	assert.Error(t, err)
}

func Test_conditions_ascIIAndUtf8(t *testing.T) {
	g := grammar.New()
	g.Encoding = grammar.EncodingASCII
	assert.True(t, conditions("ascii", g, Options{}))
	assert.False(t, conditions("utf8", g, Options{}))
}
