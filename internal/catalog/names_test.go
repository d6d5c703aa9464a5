package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	rejected := []string{"123", "", "   ", "\t", "back", "BACK", "exit", "٣"}
	for _, name := range rejected {
		require.ErrorIs(t, ValidateName(name), ErrNameRejected, "name %q", name)
	}
	for _, name := range []string{"snacks", "Snacks 2", "7up", "back-office"} {
		require.NoError(t, ValidateName(name), "name %q", name)
	}
}

func TestNormalizeCasefolds(t *testing.T) {
	require.Equal(t, "fruits", Normalize("FRUITS"))
	require.Equal(t, "strasse", Normalize("STRASSE"))
	require.True(t, IsNumeric("2024"))
	require.False(t, IsNumeric("20x4"))
	require.False(t, IsNumeric(""))
}
