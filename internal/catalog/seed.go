package catalog

type seedProduct struct {
	name  string
	price int64
}

var seedData = []struct {
	group    string
	products []seedProduct
}{
	{"fruits", []seedProduct{{"apple", 15_000}, {"banana", 90_000}, {"mango", 45_000}}},
	{"drinks", []seedProduct{{"water", 10_000}, {"soda", 20_000}, {"wine", 80_000}}},
	{"foods", []seedProduct{{"spagetty", 95_000}, {"pizza", 110_000}, {"hotdog", 80_000}}},
}

// SeedQuantity is the opening stock of every seeded product.
const SeedQuantity = 10

// Seed returns the demo warehouse: three groups of three products, ten of
// each in stock and no discounts.
func Seed() *Catalog {
	c := New()
	for _, g := range seedData {
		group, err := c.AddGroup(g.group)
		if err != nil {
			panic(err)
		}
		for _, p := range g.products {
			if _, err := c.AddProduct(group, p.name, StockRecord{Price: p.price, Quantity: SeedQuantity}); err != nil {
				panic(err)
			}
		}
	}
	return c
}
