package lalr

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/kschwaiger/yantra/internal/frontend"
	"github.com/kschwaiger/yantra/internal/lexgen"
)

func Test_DumpTable_matchesKnownGoodLayout(t *testing.T) {
	g, err := frontend.Parse(sumGrammar, "sum.yantra")
	require.NoError(t, err)
	require.NoError(t, lexgen.Build(g))
	require.NoError(t, Build(g))

	snaps.MatchSnapshot(t, DumpTable(g))
}
