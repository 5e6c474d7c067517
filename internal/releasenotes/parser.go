package releasenotes

import (
	"regexp"
	"strings"
)

var (
	level3Heading = regexp.MustCompile(`^###\s+(.+)$`)
	bulletItem    = regexp.MustCompile(`^[-*]\s+(.+)$`)
)

// scan is the result of a single pass over cleaned section content.
type scan struct {
	categories CategoryMap
	// headings lists each valid category heading once, in first-seen order.
	headings []Category
}

// Parse groups bullet entries under the valid level-3 category headings of
// content. A heading that is not a valid category discards the bullets that
// follow it until the next valid heading. A category heading seen twice
// keeps appending to the same list. Categories that received no entries are
// absent from the returned map.
func Parse(content string) CategoryMap {
	return scanContent(content).categories
}

func scanContent(content string) scan {
	s := scan{categories: make(CategoryMap)}
	seen := make(map[Category]bool)

	// cursor is empty while no valid category heading is in effect.
	var cursor Category
	for _, raw := range splitLines(content) {
		line := strings.TrimSpace(raw)

		if m := level3Heading.FindStringSubmatch(line); m != nil {
			cursor = ""
			if c, ok := ParseCategory(m[1]); ok {
				cursor = c
				if !seen[c] {
					seen[c] = true
					s.headings = append(s.headings, c)
				}
			}
			continue
		}

		if cursor == "" {
			continue
		}
		if m := bulletItem.FindStringSubmatch(line); m != nil {
			s.categories[cursor] = append(s.categories[cursor], strings.TrimSpace(m[1]))
		}
	}

	return s
}

// emptyHeadings returns the categories whose heading appeared but which
// collected no entries, in first-seen order.
func (s scan) emptyHeadings() []Category {
	var empty []Category
	for _, c := range s.headings {
		if len(s.categories[c]) == 0 {
			empty = append(empty, c)
		}
	}
	return empty
}
