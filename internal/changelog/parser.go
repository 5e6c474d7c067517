package changelog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/releasenotes"
	"gopkg.in/yaml.v3"
)

var (
	semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)
	datePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidationError represents a changelog validation error with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Load reads and validates a CHANGELOG.yaml file from the given path.
func Load(path string) (*Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(f)
}

// LoadFromReader reads and validates a CHANGELOG.yaml from an io.Reader.
func LoadFromReader(r io.Reader) (*Changelog, error) {
	var changelog Changelog

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&changelog); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{Field: "project", Message: "required field is empty"}
		}
		return nil, fmt.Errorf("parsing changelog YAML: %w", err)
	}

	if err := Validate(&changelog); err != nil {
		return nil, err
	}

	return &changelog, nil
}

// Save validates c and writes it to path as YAML. The file is written to a
// temporary sibling first and renamed into place.
func Save(c *Changelog, path string) error {
	if err := Validate(c); err != nil {
		return err
	}

	var b strings.Builder
	if err := Encode(c, &b); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".changelog-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing changelog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing changelog: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting changelog permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing changelog: %w", err)
	}
	return nil
}

// Encode writes c as YAML with two-space indentation.
func Encode(c *Changelog, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding changelog YAML: %w", err)
	}
	return enc.Close()
}

// Validate checks that a Changelog struct satisfies all schema constraints.
// Returns nil if valid, or a ValidationError with details if invalid.
func Validate(c *Changelog) error {
	if strings.TrimSpace(c.Project) == "" {
		return &ValidationError{Field: "project", Message: "required field is empty"}
	}

	unreleasedCount := 0
	seenVersions := make(map[string]bool)

	for i := range c.Versions {
		v := &c.Versions[i]
		if err := validateVersion(v, i); err != nil {
			return err
		}

		normalized := NormalizeVersion(v.Version)
		if seenVersions[normalized] {
			return &ValidationError{
				Field:   fmt.Sprintf("versions[%d].version", i),
				Message: fmt.Sprintf("duplicate version %q", v.Version),
			}
		}
		seenVersions[normalized] = true

		if v.IsUnreleased() {
			unreleasedCount++
			if i != 0 {
				return &ValidationError{
					Field:   fmt.Sprintf("versions[%d]", i),
					Message: "'unreleased' must be the first version",
				}
			}
		}
	}

	if unreleasedCount > 1 {
		return &ValidationError{
			Field:   "versions",
			Message: "only one 'unreleased' version is allowed",
		}
	}

	return nil
}

// validateVersion checks constraints for a single version entry.
func validateVersion(v *Version, index int) error {
	field := func(name string) string {
		return fmt.Sprintf("versions[%d].%s", index, name)
	}

	if v.Version == "" {
		return &ValidationError{Field: field("version"), Message: "required field is empty"}
	}

	if !v.IsUnreleased() {
		if !semverPattern.MatchString(v.Version) {
			return &ValidationError{
				Field:   field("version"),
				Message: fmt.Sprintf("invalid semver format %q (expected: X.Y.Z)", v.Version),
			}
		}
		if v.Date == "" {
			return &ValidationError{Field: field("date"), Message: "date is required for released versions"}
		}
	}

	if v.Date != "" && !datePattern.MatchString(v.Date) {
		return &ValidationError{
			Field:   field("date"),
			Message: fmt.Sprintf("invalid date format %q (expected: YYYY-MM-DD)", v.Date),
		}
	}

	if v.Changes.IsEmpty() {
		return &ValidationError{Field: field("changes"), Message: "at least one change entry is required"}
	}

	for _, cat := range releasenotes.Categories() {
		for i, entry := range v.Changes.Get(cat) {
			if strings.TrimSpace(entry) == "" {
				return &ValidationError{
					Field:   field(fmt.Sprintf("changes.%s[%d]", categoryKey(cat), i)),
					Message: "change entry cannot be empty",
				}
			}
		}
	}

	return nil
}

// categoryKey returns the YAML key for a category.
func categoryKey(cat releasenotes.Category) string {
	return strings.ToLower(string(cat))
}

// NormalizeVersion normalizes a version string by removing the "v" prefix.
// This allows accepting both "v0.6.0" and "0.6.0" as input.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}
