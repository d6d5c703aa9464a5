package pricing

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const rule = "----------------------------------------------------"

// Format renders the summary as a printable breakdown. suffix is appended
// to the final total, e.g. "T".
func (s Summary) Format(suffix string) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	for _, l := range s.Lines {
		if l.DiscountPercent == 0 {
			p.Fprintf(&b, "%s -> %d x %d = %d\n", l.Product, l.Quantity, l.UnitPrice, l.Amount)
			continue
		}
		p.Fprintf(&b, "%s -> %d x %d - %d%% = %d\n", l.Product, l.Quantity, l.UnitPrice, l.DiscountPercent, l.Amount)
	}
	b.WriteString(rule)
	b.WriteByte('\n')
	p.Fprintf(&b, "Products -> %d Final Invoice -> %d%s\n", s.Units, s.Total, suffix)
	return b.String()
}
