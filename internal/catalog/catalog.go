// Package catalog models the warehouse: named groups of products, each with
// a stock record, plus the lookup and admin operations over them.
package catalog

import (
	"fmt"

	"github.com/noah-isme/toko-sim/internal/ordered"
)

// StockRecord holds a product's unit price, available quantity and discount percent.
type StockRecord struct {
	Price    int64 `json:"price"`
	Quantity int   `json:"quantity"`
	Discount int   `json:"discount"`
}

// Group is an ordered set of products.
type Group struct {
	products *ordered.Map[*StockRecord]
}

func newGroup() *Group {
	return &Group{products: ordered.New[*StockRecord]()}
}

// Products returns product names in insertion order.
func (g *Group) Products() []string {
	return g.products.Keys()
}

// Len returns the number of products in the group.
func (g *Group) Len() int {
	return g.products.Len()
}

// Record returns the stock record for product.
func (g *Group) Record(product string) (*StockRecord, bool) {
	return g.products.Get(product)
}

// Catalog is the warehouse. It is not safe for concurrent use.
type Catalog struct {
	groups *ordered.Map[*Group]
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{groups: ordered.New[*Group]()}
}

// Groups returns group names in insertion order.
func (c *Catalog) Groups() []string {
	return c.groups.Keys()
}

// Len returns the number of groups.
func (c *Catalog) Len() int {
	return c.groups.Len()
}

// Group returns the group stored under name.
func (c *Catalog) Group(name string) (*Group, error) {
	g, ok := c.groups.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGroupNotFound, name)
	}
	return g, nil
}

// Record returns the mutable stock record of product inside group.
func (c *Catalog) Record(group, product string) (*StockRecord, error) {
	g, err := c.Group(group)
	if err != nil {
		return nil, err
	}
	rec, ok := g.Record(product)
	if !ok {
		return nil, fmt.Errorf("%w: %q in group %q", ErrProductNotFound, product, group)
	}
	return rec, nil
}

// HasProducts reports whether any group holds at least one product.
func (c *Catalog) HasProducts() bool {
	found := false
	c.groups.Range(func(_ string, g *Group) bool {
		found = g.Len() > 0
		return !found
	})
	return found
}

// ProductView is a read-only copy of a product and its stock record.
type ProductView struct {
	Name string `json:"name"`
	StockRecord
}

// GroupView is a read-only copy of a group.
type GroupView struct {
	Name     string        `json:"name"`
	Products []ProductView `json:"products"`
}

// View returns a detached snapshot of the catalog in iteration order.
func (c *Catalog) View() []GroupView {
	out := make([]GroupView, 0, c.groups.Len())
	c.groups.Range(func(name string, g *Group) bool {
		gv := GroupView{Name: name, Products: make([]ProductView, 0, g.Len())}
		g.products.Range(func(product string, rec *StockRecord) bool {
			gv.Products = append(gv.Products, ProductView{Name: product, StockRecord: *rec})
			return true
		})
		out = append(out, gv)
		return true
	})
	return out
}
