package catalog

import (
	"fmt"
	"strconv"
)

// ResolveGroup resolves a selector to a group name. A numeric selector is
// treated as a 1-based position only; anything else is matched as a
// casefolded name.
func (c *Catalog) ResolveGroup(selector string) (string, error) {
	if IsNumeric(selector) {
		n, err := strconv.Atoi(selector)
		if err == nil {
			if name, ok := c.groups.At(n); ok {
				return name, nil
			}
		}
		return "", fmt.Errorf("%w: no group at position %s", ErrGroupNotFound, selector)
	}
	name := Normalize(selector)
	if !c.groups.Has(name) {
		return "", fmt.Errorf("%w: %q", ErrGroupNotFound, selector)
	}
	return name, nil
}

// ResolveProduct resolves a selector to a product name inside group, using
// the same position-or-name rule as ResolveGroup.
func (c *Catalog) ResolveProduct(group, selector string) (string, error) {
	g, err := c.Group(group)
	if err != nil {
		return "", err
	}
	if IsNumeric(selector) {
		n, err := strconv.Atoi(selector)
		if err == nil {
			if name, ok := g.products.At(n); ok {
				return name, nil
			}
		}
		return "", fmt.Errorf("%w: no product at position %s in group %q", ErrProductNotFound, selector, group)
	}
	name := Normalize(selector)
	if !g.products.Has(name) {
		return "", fmt.Errorf("%w: %q in group %q", ErrProductNotFound, selector, group)
	}
	return name, nil
}

// GroupOf returns the group holding product.
func (c *Catalog) GroupOf(product string) (string, error) {
	var owner string
	c.groups.Range(func(name string, g *Group) bool {
		if g.products.Has(product) {
			owner = name
			return false
		}
		return true
	})
	if owner == "" {
		return "", fmt.Errorf("%w: %q", ErrProductNotFound, product)
	}
	return owner, nil
}
