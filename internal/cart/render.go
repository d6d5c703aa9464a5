package cart

import (
	"fmt"
	"strings"
)

// Render lists the entries as "1: apple 3", one per line, or a short notice
// when the list is empty.
func Render(list *ShoppingList) string {
	entries := list.Entries()
	if len(entries) == 0 {
		return "Shopping list is empty.\n"
	}
	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d: %s %d\n", i+1, e.Product, e.Quantity)
	}
	return b.String()
}
