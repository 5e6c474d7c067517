package releasenotes

import "strings"

// Category is one of the six Keep a Changelog change classifications.
type Category string

// Valid categories, declared in rendering order.
const (
	Added      Category = "Added"
	Changed    Category = "Changed"
	Deprecated Category = "Deprecated"
	Removed    Category = "Removed"
	Fixed      Category = "Fixed"
	Security   Category = "Security"
)

var categoryOrder = [...]Category{Added, Changed, Deprecated, Removed, Fixed, Security}

// Categories returns the valid categories in Keep a Changelog order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder[:])
	return out
}

// ParseCategory maps heading text to a Category, ignoring case and
// surrounding whitespace.
func ParseCategory(s string) (Category, bool) {
	key := normalize(s)
	for _, c := range categoryOrder {
		if normalize(string(c)) == key {
			return c, true
		}
	}
	return "", false
}

// String returns the category name as it appears in headings.
func (c Category) String() string {
	return string(c)
}

// CategoryMap holds entries grouped by category. Entry order within a
// category is insertion order; order across categories is always
// Categories() order, regardless of map iteration.
type CategoryMap map[Category][]string

// Count returns the total number of entries across all categories.
func (m CategoryMap) Count() int {
	n := 0
	for _, entries := range m {
		n += len(entries)
	}
	return n
}

// IsEmpty reports whether no category holds an entry.
func (m CategoryMap) IsEmpty() bool {
	return m.Count() == 0
}

// normalize is the single case-folding step shared by every heading and
// token comparison in this package.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
