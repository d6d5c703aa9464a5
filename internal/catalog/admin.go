package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names a product attribute editable through the admin surface.
type Field string

const (
	FieldName     Field = "name"
	FieldPrice    Field = "price"
	FieldQuantity Field = "quantity"
	FieldDiscount Field = "discount"
)

// ParseField maps operator text to a Field. "number" is accepted for quantity.
func ParseField(text string) (Field, bool) {
	switch Normalize(strings.TrimSpace(text)) {
	case "name":
		return FieldName, true
	case "price":
		return FieldPrice, true
	case "quantity", "number":
		return FieldQuantity, true
	case "discount":
		return FieldDiscount, true
	default:
		return "", false
	}
}

// ParseAmount parses operator text as a non-negative integer. Signs, spaces
// and any non-digit rune are rejected.
func ParseAmount(text string) (int64, error) {
	if text == "" {
		return 0, fmt.Errorf("%w: empty input", ErrNotANumber)
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrNotANumber, text)
		}
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, text)
	}
	return n, nil
}

// ParseQuantity parses operator text as a non-negative item count.
func ParseQuantity(text string) (int, error) {
	n, err := ParseAmount(text)
	if err != nil {
		return 0, err
	}
	if n > int64(maxQuantity) {
		return 0, fmt.Errorf("%w: %q is too large", ErrNotANumber, text)
	}
	return int(n), nil
}

// ParseDiscount parses operator text as a discount percent in 1..100.
func ParseDiscount(text string) (int, error) {
	n, err := ParseAmount(text)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > 100 {
		return 0, fmt.Errorf("%w: %d", ErrDiscountOutOfRange, n)
	}
	return int(n), nil
}

const maxQuantity = 1<<31 - 1

func validateRecord(rec StockRecord) error {
	if rec.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrNotANumber)
	}
	if rec.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrNotANumber)
	}
	if rec.Discount != 0 && (rec.Discount < 1 || rec.Discount > 100) {
		return fmt.Errorf("%w: %d", ErrDiscountOutOfRange, rec.Discount)
	}
	return nil
}

// AddGroup creates an empty group and returns its normalized name.
func (c *Catalog) AddGroup(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	key := Normalize(name)
	if c.groups.Has(key) {
		return "", fmt.Errorf("%w: %q", ErrGroupExists, key)
	}
	c.groups.Set(key, newGroup())
	return key, nil
}

// RenameGroup renames group, keeping its position and products.
func (c *Catalog) RenameGroup(group, newName string) (string, error) {
	if !c.groups.Has(group) {
		return "", fmt.Errorf("%w: %q", ErrGroupNotFound, group)
	}
	if err := ValidateName(newName); err != nil {
		return "", err
	}
	key := Normalize(newName)
	if key != group && c.groups.Has(key) {
		return "", fmt.Errorf("%w: %q", ErrGroupExists, key)
	}
	c.groups.Rename(group, key)
	return key, nil
}

// DeleteGroup removes group together with its products.
func (c *Catalog) DeleteGroup(group string) error {
	if !c.groups.Delete(group) {
		return fmt.Errorf("%w: %q", ErrGroupNotFound, group)
	}
	return nil
}

// AddProduct stocks a new product in group and returns its normalized name.
// Product names are unique across the whole catalog.
func (c *Catalog) AddProduct(group, name string, rec StockRecord) (string, error) {
	g, err := c.Group(group)
	if err != nil {
		return "", err
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}
	key := Normalize(name)
	if owner, err := c.GroupOf(key); err == nil {
		return "", fmt.Errorf("%w: %q in group %q", ErrProductExists, key, owner)
	}
	if err := validateRecord(rec); err != nil {
		return "", err
	}
	stored := rec
	g.products.Set(key, &stored)
	return key, nil
}

// RenameProduct renames product inside group, keeping its position and stock.
func (c *Catalog) RenameProduct(group, product, newName string) (string, error) {
	g, err := c.Group(group)
	if err != nil {
		return "", err
	}
	if !g.products.Has(product) {
		return "", fmt.Errorf("%w: %q in group %q", ErrProductNotFound, product, group)
	}
	if err := ValidateName(newName); err != nil {
		return "", err
	}
	key := Normalize(newName)
	if key != product {
		if owner, err := c.GroupOf(key); err == nil {
			return "", fmt.Errorf("%w: %q in group %q", ErrProductExists, key, owner)
		}
	}
	g.products.Rename(product, key)
	return key, nil
}

// SetPrice replaces the unit price of a product.
func (c *Catalog) SetPrice(group, product string, price int64) error {
	rec, err := c.Record(group, product)
	if err != nil {
		return err
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrNotANumber)
	}
	rec.Price = price
	return nil
}

// SetQuantity replaces the available stock of a product.
func (c *Catalog) SetQuantity(group, product string, qty int) error {
	rec, err := c.Record(group, product)
	if err != nil {
		return err
	}
	if qty < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrNotANumber)
	}
	rec.Quantity = qty
	return nil
}

// SetDiscount applies a discount percent in 1..100 to a product.
func (c *Catalog) SetDiscount(group, product string, percent int) error {
	rec, err := c.Record(group, product)
	if err != nil {
		return err
	}
	if percent < 1 || percent > 100 {
		return fmt.Errorf("%w: %d", ErrDiscountOutOfRange, percent)
	}
	rec.Discount = percent
	return nil
}

// ClearDiscount removes any discount from a product.
func (c *Catalog) ClearDiscount(group, product string) error {
	rec, err := c.Record(group, product)
	if err != nil {
		return err
	}
	rec.Discount = 0
	return nil
}
