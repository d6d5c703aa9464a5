package shop

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/toko-sim/internal/catalog"
	"github.com/noah-isme/toko-sim/internal/events"
)

// ProductInput is operator text for a new product. Discount may be empty,
// meaning no discount.
type ProductInput struct {
	Name     string
	Price    string
	Quantity string
	Discount string
}

func (in ProductInput) record() (catalog.StockRecord, error) {
	price, err := catalog.ParseAmount(strings.TrimSpace(in.Price))
	if err != nil {
		return catalog.StockRecord{}, fmt.Errorf("price: %w", err)
	}
	qty, err := catalog.ParseQuantity(strings.TrimSpace(in.Quantity))
	if err != nil {
		return catalog.StockRecord{}, fmt.Errorf("quantity: %w", err)
	}
	discount := 0
	if text := strings.TrimSpace(in.Discount); text != "" {
		n, err := catalog.ParseAmount(text)
		if err != nil {
			return catalog.StockRecord{}, fmt.Errorf("discount: %w", err)
		}
		if n > 100 {
			return catalog.StockRecord{}, fmt.Errorf("%w: %d", catalog.ErrDiscountOutOfRange, n)
		}
		discount = int(n)
	}
	return catalog.StockRecord{Price: price, Quantity: qty, Discount: discount}, nil
}

type catalogChange struct {
	Action  string `json:"action"`
	Group   string `json:"group"`
	Product string `json:"product,omitempty"`
	From    string `json:"from,omitempty"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
}

// Catalog returns a snapshot of every group and product.
func (s *Service) Catalog(ctx context.Context) []catalog.GroupView {
	_, done := s.begin(ctx, "catalog_view")
	defer done(nil)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.View()
}

// CatalogText renders the catalog as numbered groups and products.
func (s *Service) CatalogText(ctx context.Context) string {
	_, done := s.begin(ctx, "catalog_view")
	defer done(nil)
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.Render(s.catalog)
}

// AddGroup creates an empty group.
func (s *Service) AddGroup(ctx context.Context, name string) (group string, err error) {
	ctx, done := s.begin(ctx, "add_group", attribute.String("shop.group", name))
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	group, err = s.catalog.AddGroup(name)
	if err != nil {
		return "", err
	}
	s.emit(ctx, events.TopicCatalogChanged, group, catalogChange{Action: "group_added", Group: group})
	return group, nil
}

// RenameGroup renames the group chosen by selector. Groups holding a product
// reserved in an open session cannot be renamed.
func (s *Service) RenameGroup(ctx context.Context, selector, newName string) (group string, err error) {
	ctx, done := s.begin(ctx, "rename_group", attribute.String("shop.group", selector))
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	from, err := s.catalog.ResolveGroup(selector)
	if err != nil {
		return "", err
	}
	if err := s.guardGroup(from); err != nil {
		return "", err
	}
	group, err = s.catalog.RenameGroup(from, newName)
	if err != nil {
		return "", err
	}
	s.emit(ctx, events.TopicCatalogChanged, group, catalogChange{Action: "group_renamed", Group: group, From: from})
	return group, nil
}

// DeleteGroup removes the group chosen by selector with all its products.
func (s *Service) DeleteGroup(ctx context.Context, selector string) (err error) {
	ctx, done := s.begin(ctx, "delete_group", attribute.String("shop.group", selector))
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	group, err := s.catalog.ResolveGroup(selector)
	if err != nil {
		return err
	}
	if err := s.guardGroup(group); err != nil {
		return err
	}
	if err := s.catalog.DeleteGroup(group); err != nil {
		return err
	}
	s.emit(ctx, events.TopicCatalogChanged, group, catalogChange{Action: "group_deleted", Group: group})
	return nil
}

// AddProduct stocks a new product in the group chosen by selector.
func (s *Service) AddProduct(ctx context.Context, selector string, in ProductInput) (view catalog.ProductView, err error) {
	ctx, done := s.begin(ctx, "add_product",
		attribute.String("shop.group", selector),
		attribute.String("shop.product", in.Name),
	)
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	group, err := s.catalog.ResolveGroup(selector)
	if err != nil {
		return catalog.ProductView{}, err
	}
	rec, err := in.record()
	if err != nil {
		return catalog.ProductView{}, err
	}
	product, err := s.catalog.AddProduct(group, in.Name, rec)
	if err != nil {
		return catalog.ProductView{}, err
	}
	s.emit(ctx, events.TopicCatalogChanged, group, catalogChange{Action: "product_added", Group: group, Product: product})
	return s.productView(group, product)
}

// EditProduct changes one attribute of a product. value is operator text:
// a new name, a price, a quantity, or a discount percent in 1..100.
func (s *Service) EditProduct(ctx context.Context, groupSelector, productSelector, field, value string) (view catalog.ProductView, err error) {
	ctx, done := s.begin(ctx, "edit_product",
		attribute.String("shop.group", groupSelector),
		attribute.String("shop.product", productSelector),
		attribute.String("shop.field", field),
	)
	defer func() { done(err) }()

	f, ok := catalog.ParseField(field)
	if !ok {
		return catalog.ProductView{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	group, product, err := s.resolveProduct(groupSelector, productSelector)
	if err != nil {
		return catalog.ProductView{}, err
	}

	value = strings.TrimSpace(value)
	switch f {
	case catalog.FieldName:
		if err := s.guardProduct(product); err != nil {
			return catalog.ProductView{}, err
		}
		renamed, err := s.catalog.RenameProduct(group, product, value)
		if err != nil {
			return catalog.ProductView{}, err
		}
		s.emit(ctx, events.TopicCatalogChanged, group, catalogChange{Action: "product_renamed", Group: group, Product: renamed, From: product})
		return s.productView(group, renamed)
	case catalog.FieldPrice:
		price, err := catalog.ParseAmount(value)
		if err != nil {
			return catalog.ProductView{}, err
		}
		if err := s.catalog.SetPrice(group, product, price); err != nil {
			return catalog.ProductView{}, err
		}
	case catalog.FieldQuantity:
		qty, err := catalog.ParseQuantity(value)
		if err != nil {
			return catalog.ProductView{}, err
		}
		if err := s.catalog.SetQuantity(group, product, qty); err != nil {
			return catalog.ProductView{}, err
		}
	case catalog.FieldDiscount:
		percent, err := catalog.ParseDiscount(value)
		if err != nil {
			return catalog.ProductView{}, err
		}
		if err := s.catalog.SetDiscount(group, product, percent); err != nil {
			return catalog.ProductView{}, err
		}
	}
	s.emit(ctx, events.TopicCatalogChanged, group, catalogChange{
		Action: "product_edited", Group: group, Product: product, Field: string(f), Value: value,
	})
	return s.productView(group, product)
}

// ClearDiscount removes the discount of a product.
func (s *Service) ClearDiscount(ctx context.Context, groupSelector, productSelector string) (view catalog.ProductView, err error) {
	ctx, done := s.begin(ctx, "clear_discount",
		attribute.String("shop.group", groupSelector),
		attribute.String("shop.product", productSelector),
	)
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	group, product, err := s.resolveProduct(groupSelector, productSelector)
	if err != nil {
		return catalog.ProductView{}, err
	}
	if err := s.catalog.ClearDiscount(group, product); err != nil {
		return catalog.ProductView{}, err
	}
	s.emit(ctx, events.TopicCatalogChanged, group, catalogChange{Action: "discount_cleared", Group: group, Product: product})
	return s.productView(group, product)
}

// resolveProduct resolves both selectors. Product edits need at least one
// product somewhere in the catalog. Callers hold s.mu.
func (s *Service) resolveProduct(groupSelector, productSelector string) (string, string, error) {
	if !s.catalog.HasProducts() {
		return "", "", fmt.Errorf("%w: the catalog has no products", catalog.ErrProductNotFound)
	}
	group, err := s.catalog.ResolveGroup(groupSelector)
	if err != nil {
		return "", "", err
	}
	product, err := s.catalog.ResolveProduct(group, productSelector)
	if err != nil {
		return "", "", err
	}
	return group, product, nil
}

func (s *Service) productView(group, product string) (catalog.ProductView, error) {
	rec, err := s.catalog.Record(group, product)
	if err != nil {
		return catalog.ProductView{}, err
	}
	return catalog.ProductView{Name: product, StockRecord: *rec}, nil
}

func (s *Service) guardProduct(product string) error {
	if id, held := s.reservedBy(product); held {
		return fmt.Errorf("%w: %q is held by session %s", ErrProductReserved, product, id)
	}
	return nil
}

func (s *Service) guardGroup(group string) error {
	g, err := s.catalog.Group(group)
	if err != nil {
		return err
	}
	for _, product := range g.Products() {
		if err := s.guardProduct(product); err != nil {
			return err
		}
	}
	return nil
}
