package catalog

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatAmount renders n with grouped thousands, e.g. 15000 -> "15,000".
func FormatAmount(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// Render lists every group and its products as indented text.
func Render(c *Catalog) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	for i, g := range c.View() {
		p.Fprintf(&b, "%d: %s\n", i+1, g.Name)
		for j, prod := range g.Products {
			p.Fprintf(&b, "\t%d: %s -> Price: %d Number: %d and discount: %d\n",
				j+1, prod.Name, prod.Price, prod.Quantity, prod.Discount)
		}
	}
	return b.String()
}
