// Package cart holds the shopping list and the reservation engine that moves
// quantity between catalog stock and the list.
package cart

import (
	"fmt"
	"strconv"

	"github.com/noah-isme/toko-sim/internal/catalog"
	"github.com/noah-isme/toko-sim/internal/ordered"
)

// Entry is a reserved product and its quantity.
type Entry struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// ShoppingList maps product names to reserved quantities. Every stored
// quantity is positive; entries reaching zero are removed.
type ShoppingList struct {
	items *ordered.Map[int]
}

// NewShoppingList returns an empty list.
func NewShoppingList() *ShoppingList {
	return &ShoppingList{items: ordered.New[int]()}
}

// Quantity returns the reserved quantity of product, zero when absent.
func (l *ShoppingList) Quantity(product string) int {
	if l == nil {
		return 0
	}
	q, _ := l.items.Get(product)
	return q
}

// Contains reports whether product has an entry.
func (l *ShoppingList) Contains(product string) bool {
	return l != nil && l.items.Has(product)
}

// Len returns the number of entries.
func (l *ShoppingList) Len() int {
	if l == nil {
		return 0
	}
	return l.items.Len()
}

// Products returns product names in reservation order.
func (l *ShoppingList) Products() []string {
	if l == nil {
		return nil
	}
	return l.items.Keys()
}

// Entries returns a copy of the list in reservation order.
func (l *ShoppingList) Entries() []Entry {
	if l == nil {
		return []Entry{}
	}
	out := make([]Entry, 0, l.items.Len())
	l.items.Range(func(product string, qty int) bool {
		out = append(out, Entry{Product: product, Quantity: qty})
		return true
	})
	return out
}

// Resolve maps a selector to a listed product: a numeric selector is a
// 1-based position, anything else a casefolded name.
func (l *ShoppingList) Resolve(selector string) (string, error) {
	if catalog.IsNumeric(selector) {
		n, err := strconv.Atoi(selector)
		if err == nil {
			if product, ok := l.items.At(n); ok {
				return product, nil
			}
		}
		return "", fmt.Errorf("%w: no shopping list entry at position %s", catalog.ErrProductNotFound, selector)
	}
	product := catalog.Normalize(selector)
	if !l.Contains(product) {
		return "", fmt.Errorf("%w: %q is not in the shopping list", catalog.ErrProductNotFound, selector)
	}
	return product, nil
}

func (l *ShoppingList) add(product string, qty int) {
	l.items.Set(product, l.Quantity(product)+qty)
}

func (l *ShoppingList) remove(product string, qty int) {
	left := l.Quantity(product) - qty
	if left <= 0 {
		l.items.Delete(product)
		return
	}
	l.items.Set(product, left)
}
