package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/noah-isme/toko-sim/internal/cart"
	"github.com/noah-isme/toko-sim/internal/catalog"
)

// Money represents a monetary value in whole currency units.
type Money = int64

// ErrAmountOverflow is returned when a line amount or invoice total does not
// fit in Money.
var ErrAmountOverflow = errors.New("amount overflow")

// LineItem is one priced product on an invoice.
type LineItem struct {
	Product         string `json:"product"`
	Quantity        int    `json:"quantity"`
	UnitPrice       Money  `json:"unitPrice"`
	DiscountPercent int    `json:"discountPercent"`
}

// Invoice is an ordered list of line items with at most one line per product.
type Invoice struct {
	lines []LineItem
}

// Add appends line unless a line for the same product is already present.
// It reports whether the line was added.
func (inv *Invoice) Add(line LineItem) bool {
	for _, existing := range inv.lines {
		if existing.Product == line.Product {
			return false
		}
	}
	inv.lines = append(inv.lines, line)
	return true
}

// Lines returns a copy of the invoice lines.
func (inv Invoice) Lines() []LineItem {
	out := make([]LineItem, len(inv.lines))
	copy(out, inv.lines)
	return out
}

// Len returns the number of lines.
func (inv Invoice) Len() int {
	return len(inv.lines)
}

// AppendLines adds one line per shopping list entry, taking price and
// discount from the catalog. Products already on the invoice are skipped, so
// repeated calls never double a line.
func AppendLines(inv *Invoice, list *cart.ShoppingList, c *catalog.Catalog) error {
	for _, e := range list.Entries() {
		group, err := c.GroupOf(e.Product)
		if err != nil {
			return fmt.Errorf("price %q: %w", e.Product, err)
		}
		rec, err := c.Record(group, e.Product)
		if err != nil {
			return fmt.Errorf("price %q: %w", e.Product, err)
		}
		inv.Add(LineItem{
			Product:         e.Product,
			Quantity:        e.Quantity,
			UnitPrice:       rec.Price,
			DiscountPercent: rec.Discount,
		})
	}
	return nil
}

// BuildInvoice derives a fresh invoice from the shopping list.
func BuildInvoice(list *cart.ShoppingList, c *catalog.Catalog) (Invoice, error) {
	var inv Invoice
	if err := AppendLines(&inv, list, c); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

// PriceLine returns the amount due for a line. The discount is taken off
// the unit price, truncated, before multiplying by quantity.
func PriceLine(line LineItem) (Money, error) {
	unit := line.UnitPrice - discountOf(line.UnitPrice, line.DiscountPercent)
	qty := Money(line.Quantity)
	if qty > 0 && unit > math.MaxInt64/qty {
		return 0, fmt.Errorf("%w: %d x %d for %q", ErrAmountOverflow, line.Quantity, unit, line.Product)
	}
	return unit * qty, nil
}

// discountOf returns price*percent/100 truncated, split so the product never
// leaves int64.
func discountOf(price Money, percent int) Money {
	p := Money(percent)
	return (price/100)*p + (price%100)*p/100
}

// PricedLine pairs a line with its amount.
type PricedLine struct {
	LineItem
	Amount Money `json:"amount"`
}

// Summary aggregates a priced invoice.
type Summary struct {
	Lines []PricedLine `json:"lines"`
	Total Money        `json:"total"`
	Units int          `json:"units"`
}

// Summarize prices every line and adds the amounts to runningTotal.
func Summarize(inv Invoice, runningTotal Money) (Summary, error) {
	s := Summary{Lines: make([]PricedLine, 0, len(inv.lines)), Total: runningTotal}
	for _, line := range inv.lines {
		amount, err := PriceLine(line)
		if err != nil {
			return Summary{}, err
		}
		if amount > math.MaxInt64-s.Total {
			return Summary{}, fmt.Errorf("%w: invoice total", ErrAmountOverflow)
		}
		s.Lines = append(s.Lines, PricedLine{LineItem: line, Amount: amount})
		s.Total += amount
		s.Units += line.Quantity
	}
	return s, nil
}
