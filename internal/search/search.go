// Package search finds shopping list entries by substring and scores each
// hit by sequence similarity.
package search

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/noah-isme/toko-sim/internal/cart"
	"github.com/noah-isme/toko-sim/internal/catalog"
)

// Result is a matching product and its similarity to the search term.
type Result struct {
	Product string  `json:"product"`
	Score   float64 `json:"score"`
}

// Search returns every listed product whose casefolded name contains the
// casefolded term, in shopping list order. Scores are informational and do
// not affect inclusion or order.
func Search(list *cart.ShoppingList, term string) []Result {
	results := []Result{}
	needle := catalog.Normalize(term)
	for _, product := range list.Products() {
		if !strings.Contains(catalog.Normalize(product), needle) {
			continue
		}
		results = append(results, Result{Product: product, Score: Similarity(product, term)})
	}
	return results
}

// Similarity returns 2*M/T where M is the number of characters in the
// matching blocks of a and b and T is their combined length.
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

func chars(s string) []string {
	return strings.Split(s, "")
}

// Format renders results as a search report, two decimals per score.
func Format(term string, results []Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search for %s...\n", term)
	if len(results) == 0 {
		b.WriteString("No result Found.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Found (%d) results:\n", len(results))
	for _, r := range results {
		fmt.Fprintf(&b, "Product: %s, Similarity Score: %.2f\n", r.Product, r.Score)
	}
	return b.String()
}
