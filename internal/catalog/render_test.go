package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	c := New()
	_, err := c.AddGroup("fruits")
	require.NoError(t, err)
	_, err = c.AddProduct("fruits", "apple", StockRecord{Price: 15_000, Quantity: 10})
	require.NoError(t, err)
	_, err = c.AddGroup("empty")
	require.NoError(t, err)

	out := Render(c)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Equal(t, []string{
		"1: fruits",
		"\t1: apple -> Price: 15,000 Number: 10 and discount: 0",
		"2: empty",
	}, lines)
	require.Equal(t, "1,234,567", FormatAmount(1_234_567))
}

func TestSeed(t *testing.T) {
	c := Seed()
	require.Equal(t, []string{"fruits", "drinks", "foods"}, c.Groups())
	rec, err := c.Record("foods", "spagetty")
	require.NoError(t, err)
	require.Equal(t, StockRecord{Price: 95_000, Quantity: SeedQuantity}, *rec)
	require.True(t, c.HasProducts())

	view := c.View()
	view[0].Products[0].Quantity = 0
	rec, err = c.Record("fruits", "apple")
	require.NoError(t, err)
	require.Equal(t, SeedQuantity, rec.Quantity, "views are detached copies")
}
