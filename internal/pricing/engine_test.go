package pricing

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-sim/internal/cart"
	"github.com/noah-isme/toko-sim/internal/catalog"
)

func mustPrice(t *testing.T, line LineItem) Money {
	t.Helper()
	amount, err := PriceLine(line)
	require.NoError(t, err)
	return amount
}

func mustSummarize(t *testing.T, inv Invoice, runningTotal Money) Summary {
	t.Helper()
	s, err := Summarize(inv, runningTotal)
	require.NoError(t, err)
	return s
}

func TestPriceLine(t *testing.T) {
	require.EqualValues(t, 270, mustPrice(t, LineItem{Product: "x", UnitPrice: 100, Quantity: 3, DiscountPercent: 10}))
	require.EqualValues(t, 190_000, mustPrice(t, LineItem{Product: "spagetty", UnitPrice: 95_000, Quantity: 2}))
	// 99 * 33 / 100 = 32.67 is truncated to 32 per unit before multiplying.
	require.EqualValues(t, 201, mustPrice(t, LineItem{Product: "y", UnitPrice: 99, Quantity: 3, DiscountPercent: 33}))
	require.EqualValues(t, 0, mustPrice(t, LineItem{Product: "z", UnitPrice: 500, Quantity: 4, DiscountPercent: 100}))
}

func TestPriceLineLargeAmounts(t *testing.T) {
	require.EqualValues(t, int64(500_000_000_000_000_000),
		mustPrice(t, LineItem{Product: "silver", UnitPrice: 1_000_000_000_000_000_000, Quantity: 1, DiscountPercent: 50}))
	require.EqualValues(t, int64(math.MaxInt64),
		mustPrice(t, LineItem{Product: "max", UnitPrice: math.MaxInt64, Quantity: 1}))
	require.EqualValues(t, int64(math.MaxInt64)-int64(math.MaxInt64)/100*33-(int64(math.MaxInt64)%100)*33/100,
		mustPrice(t, LineItem{Product: "max", UnitPrice: math.MaxInt64, Quantity: 1, DiscountPercent: 33}))

	_, err := PriceLine(LineItem{Product: "gold", UnitPrice: 9_000_000_000_000_000_000, Quantity: 2})
	require.ErrorIs(t, err, ErrAmountOverflow)
}

func TestSummarizeRejectsOverflowingTotal(t *testing.T) {
	var inv Invoice
	inv.Add(LineItem{Product: "gold", UnitPrice: 5_000_000_000_000_000_000, Quantity: 1})
	inv.Add(LineItem{Product: "silver", UnitPrice: 5_000_000_000_000_000_000, Quantity: 1})

	_, err := Summarize(inv, 0)
	require.ErrorIs(t, err, ErrAmountOverflow)

	var single Invoice
	single.Add(LineItem{Product: "gold", UnitPrice: math.MaxInt64, Quantity: 1})
	_, err = Summarize(single, 1)
	require.ErrorIs(t, err, ErrAmountOverflow)
}

func seededList(t *testing.T) (*catalog.Catalog, *cart.ShoppingList) {
	t.Helper()
	c := catalog.Seed()
	require.NoError(t, c.SetDiscount("drinks", "wine", 10))
	list := cart.NewShoppingList()
	require.NoError(t, cart.Reserve(c, list, "fruits", "apple", 3))
	require.NoError(t, cart.Reserve(c, list, "drinks", "wine", 2))
	return c, list
}

func TestBuildInvoiceIsIdempotent(t *testing.T) {
	c, list := seededList(t)

	first, err := BuildInvoice(list, c)
	require.NoError(t, err)
	second, err := BuildInvoice(list, c)
	require.NoError(t, err)
	require.Equal(t, first.Lines(), second.Lines())
	require.Equal(t, mustSummarize(t, first, 0), mustSummarize(t, second, 0))

	require.NoError(t, AppendLines(&first, list, c))
	require.Equal(t, 2, first.Len(), "appending the same list again adds nothing")
	require.False(t, first.Add(LineItem{Product: "apple", Quantity: 9}))

	require.Equal(t, []LineItem{
		{Product: "apple", Quantity: 3, UnitPrice: 15_000},
		{Product: "wine", Quantity: 2, UnitPrice: 80_000, DiscountPercent: 10},
	}, first.Lines())
}

func TestSummarize(t *testing.T) {
	c, list := seededList(t)
	inv, err := BuildInvoice(list, c)
	require.NoError(t, err)

	s := mustSummarize(t, inv, 0)
	require.EqualValues(t, 45_000+144_000, s.Total)
	require.Equal(t, 5, s.Units)
	require.Len(t, s.Lines, 2)
	require.EqualValues(t, 144_000, s.Lines[1].Amount)

	carried := mustSummarize(t, inv, 1_000)
	require.EqualValues(t, s.Total+1_000, carried.Total)
}

func TestEmptyInvoice(t *testing.T) {
	c := catalog.Seed()
	inv, err := BuildInvoice(cart.NewShoppingList(), c)
	require.NoError(t, err)
	require.Zero(t, inv.Len())

	s := mustSummarize(t, inv, 500)
	require.EqualValues(t, 500, s.Total)
	require.Zero(t, s.Units)
	require.Empty(t, s.Lines)
}

func TestBuildInvoiceMissingProduct(t *testing.T) {
	c, list := seededList(t)
	require.NoError(t, c.DeleteGroup("drinks"))

	_, err := BuildInvoice(list, c)
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestSummaryFormat(t *testing.T) {
	c, list := seededList(t)
	inv, err := BuildInvoice(list, c)
	require.NoError(t, err)

	out := mustSummarize(t, inv, 0).Format("T")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Equal(t, []string{
		"apple -> 3 x 15,000 = 45,000",
		"wine -> 2 x 80,000 - 10% = 144,000",
		rule,
		"Products -> 5 Final Invoice -> 189,000T",
	}, lines)
}
