package changelog

import (
	"fmt"

	"github.com/ariel-frischer/relnotes/internal/releasenotes"
)

// Merge appends entries to the unreleased version, creating it at the top of
// the changelog when absent. Entries already recorded under the same
// category of the unreleased version are skipped, so merging the same pull
// request twice is a no-op. Returns the number of entries added.
func (c *Changelog) Merge(entries releasenotes.CategoryMap) int {
	var pending Changes
	added := 0

	unreleased := c.GetUnreleased()
	for _, cat := range releasenotes.Categories() {
		existing := make(map[string]bool)
		if unreleased != nil {
			for _, e := range unreleased.Changes.Get(cat) {
				existing[e] = true
			}
		}

		slot := pending.slot(cat)
		for _, e := range entries[cat] {
			if e == "" || existing[e] {
				continue
			}
			existing[e] = true
			*slot = append(*slot, e)
			added++
		}
	}

	if added == 0 {
		return 0
	}

	if unreleased == nil {
		c.Versions = append([]Version{{Version: Unreleased}}, c.Versions...)
		unreleased = &c.Versions[0]
	}
	for _, cat := range releasenotes.Categories() {
		slot := unreleased.Changes.slot(cat)
		*slot = append(*slot, pending.Get(cat)...)
	}

	return added
}

// Release turns the unreleased version into version, dated date
// (YYYY-MM-DD). The version must not already exist.
func (c *Changelog) Release(version, date string) error {
	unreleased := c.GetUnreleased()
	if unreleased == nil {
		return fmt.Errorf("no unreleased changes to release")
	}

	normalized := NormalizeVersion(version)
	if normalized == Unreleased {
		return &ValidationError{Field: "version", Message: "cannot release as 'unreleased'"}
	}
	if _, err := c.GetVersion(normalized); err == nil {
		return &ValidationError{Field: "version", Message: fmt.Sprintf("version %q already exists", normalized)}
	}
	if !semverPattern.MatchString(normalized) {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("invalid semver format %q (expected: X.Y.Z)", version),
		}
	}
	if !datePattern.MatchString(date) {
		return &ValidationError{
			Field:   "date",
			Message: fmt.Sprintf("invalid date format %q (expected: YYYY-MM-DD)", date),
		}
	}

	unreleased.Version = normalized
	unreleased.Date = date
	return nil
}
