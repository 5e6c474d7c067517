package releasenotes

import (
	"fmt"
	"regexp"
	"strings"
)

// Attribution identifies the pull request and author credited on each entry.
type Attribution struct {
	Number    int
	URL       string
	Author    string
	AuthorURL string
}

// suffix is the reference appended to entries that lack a PR link.
func (a Attribution) suffix() string {
	return fmt.Sprintf(" ([#%d](%s) by [%s](%s))", a.Number, a.URL, a.Author, a.AuthorURL)
}

// linkPattern matches a markdown link whose text mentions this PR number.
func (a Attribution) linkPattern() *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`\[[^\]]*#%d\b[^\]]*\]\(`, a.Number))
}

// Attribute returns a copy of categories ready for the changelog. Each list
// is trimmed and deduplicated, keeping the first occurrence of an entry in
// its original position. Entries that lack a markdown link to the PR get one
// appended, followed by the author credit. Keys that are not valid categories
// and lists left empty are dropped.
func Attribute(categories CategoryMap, attr Attribution) CategoryMap {
	linked := attr.linkPattern()

	out := make(CategoryMap)
	for _, c := range categoryOrder {
		entries := dedupe(categories[c])
		if len(entries) == 0 {
			continue
		}
		for i, entry := range entries {
			if !linked.MatchString(entry) {
				entries[i] = entry + attr.suffix()
			}
		}
		out[c] = entries
	}
	return out
}

// FormatForChangelog renders the attributed categories as Keep a Changelog
// markdown in the fixed category order: a "### Category" heading followed by
// one bullet per entry. Category blocks are separated by one blank line. The
// output has no trailing newline and is empty when there are no entries.
func FormatForChangelog(categories CategoryMap, attr Attribution) string {
	attributed := Attribute(categories, attr)

	var blocks []string
	for _, c := range categoryOrder {
		entries, ok := attributed[c]
		if !ok {
			continue
		}

		var b strings.Builder
		b.WriteString("### ")
		b.WriteString(string(c))
		for _, entry := range entries {
			b.WriteString("\n- ")
			b.WriteString(entry)
		}
		blocks = append(blocks, b.String())
	}

	return strings.Join(blocks, "\n\n")
}

// dedupe returns the trimmed, non-empty entries with later exact duplicates
// removed.
func dedupe(entries []string) []string {
	seen := make(map[string]bool, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
