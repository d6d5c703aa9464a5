package cart_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/noah-isme/toko-sim/internal/cart"
	"github.com/noah-isme/toko-sim/internal/catalog"
)

// Stock plus reserved quantity never changes, stock never goes negative and
// failed operations leave both sides untouched.
func TestProperty_ReservationConservesQuantity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.IntRange(0, 50).Draw(t, "initial")
		c := catalog.New()
		if _, err := c.AddGroup("fruits"); err != nil {
			t.Fatalf("add group: %v", err)
		}
		if _, err := c.AddProduct("fruits", "apple", catalog.StockRecord{Price: 100, Quantity: initial}); err != nil {
			t.Fatalf("add product: %v", err)
		}
		rec, err := c.Record("fruits", "apple")
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		list := cart.NewShoppingList()

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			qty := rapid.IntRange(1, 20).Draw(t, "qty")
			beforeStock, beforeReserved := rec.Quantity, list.Quantity("apple")

			var opErr error
			if rapid.Bool().Draw(t, "reserve") {
				opErr = cart.Reserve(c, list, "fruits", "apple", qty)
			} else {
				opErr = cart.Release(c, list, "apple", qty)
			}

			if rec.Quantity < 0 {
				t.Fatalf("stock went negative: %d", rec.Quantity)
			}
			if got := rec.Quantity + list.Quantity("apple"); got != initial {
				t.Fatalf("conservation broken: stock %d + reserved %d != %d", rec.Quantity, list.Quantity("apple"), initial)
			}
			if opErr != nil && (rec.Quantity != beforeStock || list.Quantity("apple") != beforeReserved) {
				t.Fatalf("failed operation mutated state: %v", opErr)
			}
			if list.Contains("apple") && list.Quantity("apple") == 0 {
				t.Fatalf("zero-quantity entry left in the shopping list")
			}
		}
	})
}
