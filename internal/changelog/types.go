package changelog

import "github.com/ariel-frischer/relnotes/internal/releasenotes"

// Unreleased is the version identifier for changes not yet in a release.
const Unreleased = "unreleased"

// Changelog represents the root structure of a CHANGELOG.yaml file.
// Versions are ordered newest first.
type Changelog struct {
	Project  string    `yaml:"project"`
	Versions []Version `yaml:"versions"`
}

// Version represents a single version entry in the changelog.
// Version is a bare semantic version (e.g., "0.6.0") or "unreleased".
// Date (YYYY-MM-DD) is required for released versions and empty otherwise.
type Version struct {
	Version string  `yaml:"version"`
	Date    string  `yaml:"date,omitempty"`
	Changes Changes `yaml:"changes"`
}

// Changes groups change entries by Keep a Changelog category.
// Empty categories are omitted when saving and rendering.
type Changes struct {
	Added      []string `yaml:"added,omitempty"`
	Changed    []string `yaml:"changed,omitempty"`
	Deprecated []string `yaml:"deprecated,omitempty"`
	Removed    []string `yaml:"removed,omitempty"`
	Fixed      []string `yaml:"fixed,omitempty"`
	Security   []string `yaml:"security,omitempty"`
}

// slot returns a pointer to the list backing category c, or nil for an
// unknown category.
func (c *Changes) slot(cat releasenotes.Category) *[]string {
	switch cat {
	case releasenotes.Added:
		return &c.Added
	case releasenotes.Changed:
		return &c.Changed
	case releasenotes.Deprecated:
		return &c.Deprecated
	case releasenotes.Removed:
		return &c.Removed
	case releasenotes.Fixed:
		return &c.Fixed
	case releasenotes.Security:
		return &c.Security
	default:
		return nil
	}
}

// NewChanges copies a CategoryMap into Changes, ignoring unknown categories.
func NewChanges(m releasenotes.CategoryMap) Changes {
	var c Changes
	for _, cat := range releasenotes.Categories() {
		if entries := m[cat]; len(entries) > 0 {
			*c.slot(cat) = append([]string(nil), entries...)
		}
	}
	return c
}

// Get returns the entries recorded under category cat.
func (c Changes) Get(cat releasenotes.Category) []string {
	if s := c.slot(cat); s != nil {
		return *s
	}
	return nil
}

// Categories converts the changes to a CategoryMap holding only non-empty categories.
func (c Changes) Categories() releasenotes.CategoryMap {
	m := make(releasenotes.CategoryMap)
	for _, cat := range releasenotes.Categories() {
		if entries := c.Get(cat); len(entries) > 0 {
			m[cat] = entries
		}
	}
	return m
}

// IsEmpty returns true if the Changes struct has no entries in any category.
func (c Changes) IsEmpty() bool {
	return c.Count() == 0
}

// Count returns the total number of entries across all categories.
func (c Changes) Count() int {
	n := 0
	for _, cat := range releasenotes.Categories() {
		n += len(c.Get(cat))
	}
	return n
}

// IsUnreleased returns true if this version represents unreleased changes.
func (v Version) IsUnreleased() bool {
	return v.Version == Unreleased
}
