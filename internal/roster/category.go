// Package roster holds the in-memory roster document and enforces its
// membership invariants.
package roster

import "strings"

// Category identifies one of the two mutually exclusive roster lists.
type Category string

const (
	CategoryMSR Category = "msr"
	CategoryQT  Category = "qt"
)

// Categories lists every category in document order.
var Categories = []Category{CategoryMSR, CategoryQT}

// ParseCategory maps a user-typed token onto a category (case-insensitive).
func ParseCategory(token string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(token))) {
	case CategoryMSR:
		return CategoryMSR, true
	case CategoryQT:
		return CategoryQT, true
	default:
		return "", false
	}
}

// Other returns the category a name migrates out of when added to c.
func (c Category) Other() Category {
	if c == CategoryMSR {
		return CategoryQT
	}
	return CategoryMSR
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryMSR || c == CategoryQT
}

func (c Category) String() string {
	return string(c)
}
