package cart

import (
	"errors"
	"fmt"

	"github.com/noah-isme/toko-sim/internal/catalog"
)

var (
	// ErrInsufficientStock is returned when a reservation asks for more than is in stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrExceedsReserved is returned when a release asks for more than is reserved.
	ErrExceedsReserved = errors.New("release exceeds reserved quantity")
	// ErrInvalidQuantity is returned for a non-positive reserve or release quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Reserve moves qty units of product from group's stock into list.
// Nothing changes unless the whole quantity is available.
func Reserve(c *catalog.Catalog, list *ShoppingList, group, product string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("reserve %q: %w", product, ErrInvalidQuantity)
	}
	rec, err := c.Record(group, product)
	if err != nil {
		return err
	}
	if qty > rec.Quantity {
		return fmt.Errorf("%w: %q has %d in stock, requested %d", ErrInsufficientStock, product, rec.Quantity, qty)
	}
	rec.Quantity -= qty
	list.add(product, qty)
	return nil
}

// Release returns qty units of product from list to catalog stock. The list
// entry is removed when its quantity reaches zero.
func Release(c *catalog.Catalog, list *ShoppingList, product string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("release %q: %w", product, ErrInvalidQuantity)
	}
	reserved := list.Quantity(product)
	if reserved == 0 {
		return fmt.Errorf("%w: %q is not in the shopping list", catalog.ErrProductNotFound, product)
	}
	if qty > reserved {
		return fmt.Errorf("%w: %q has %d reserved, requested %d", ErrExceedsReserved, product, reserved, qty)
	}
	group, err := c.GroupOf(product)
	if err != nil {
		return err
	}
	rec, err := c.Record(group, product)
	if err != nil {
		return err
	}
	list.remove(product, qty)
	rec.Quantity += qty
	return nil
}

// ReleaseAll returns every reserved entry to stock and empties list. Entries
// whose product has left the catalog are dropped and reported in the error.
func ReleaseAll(c *catalog.Catalog, list *ShoppingList) error {
	var joined error
	for _, e := range list.Entries() {
		if err := Release(c, list, e.Product, e.Quantity); err != nil {
			list.remove(e.Product, e.Quantity)
			joined = errors.Join(joined, err)
		}
	}
	return joined
}
