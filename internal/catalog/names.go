package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// reservedNames are menu keywords that can never be used as a group or product name.
var reservedNames = map[string]struct{}{
	"back":   {},
	"b":      {},
	"return": {},
	"exit":   {},
	"quit":   {},
	"q":      {},
	"none":   {},
	"null":   {},
}

// Normalize casefolds a group or product name.
func Normalize(name string) string {
	return cases.Fold().String(name)
}

// IsNumeric reports whether s is non-empty and made only of numeric runes.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

// IsReserved reports whether the casefolded name is a reserved keyword.
func IsReserved(name string) bool {
	_, ok := reservedNames[Normalize(name)]
	return ok
}

// ValidateName checks the structural rules shared by group and product names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name must not be blank", ErrNameRejected)
	}
	if IsNumeric(name) {
		return fmt.Errorf("%w: %q must not be numeric", ErrNameRejected, name)
	}
	if IsReserved(name) {
		return fmt.Errorf("%w: %q is a reserved keyword", ErrNameRejected, name)
	}
	return nil
}
