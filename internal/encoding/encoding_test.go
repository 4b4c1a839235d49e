package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kschwaiger/yantra/internal/gerrors"
)

func Test_ValidateASCII_passesPlainASCIISource(t *testing.T) {
	out, err := ValidateASCII("NUM := \\d+ ;\n", "t.yantra")
	require.NoError(t, err)
	assert.Equal(t, "NUM := \\d+ ;\n", out)
}

func Test_ValidateASCII_rejectsNonASCIIRune(t *testing.T) {
	_, err := ValidateASCII("NAME := \"café\" ;\n", "t.yantra")
	require.Error(t, err)
	assert.True(t, gerrors.Is(err, gerrors.NonASCIIInput))
}

func Test_ValidateASCII_reportsCorrectLine(t *testing.T) {
	_, err := ValidateASCII("A := \"a\" ;\nB := \"€\" ;\n", "t.yantra")
	require.Error(t, err)
	ge, ok := err.(*gerrors.Error)
	require.True(t, ok)
	assert.Equal(t, 2, ge.Pos().Line)
}
