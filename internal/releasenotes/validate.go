package releasenotes

import (
	"fmt"
	"strings"
)

// Reason classifies the outcome of Validate.
type Reason int

const (
	// ReasonValid means at least one category holds entries and none is empty.
	ReasonValid Reason = iota
	// ReasonOptOut means the author wrote NONE under the heading.
	ReasonOptOut
	// ReasonMissingSection means the body has no "## Release Notes" heading.
	ReasonMissingSection
	// ReasonNoCategories means no valid category collected an entry.
	ReasonNoCategories
	// ReasonEmptyCategory means a valid category heading has no bullets.
	ReasonEmptyCategory
)

// String returns a short machine-friendly name for the reason.
func (r Reason) String() string {
	switch r {
	case ReasonValid:
		return "valid"
	case ReasonOptOut:
		return "opt-out"
	case ReasonMissingSection:
		return "missing-section"
	case ReasonNoCategories:
		return "no-categories"
	case ReasonEmptyCategory:
		return "empty-category"
	default:
		return "unknown"
	}
}

// MessageValid is the confirmation message for well-formed release notes.
const MessageValid = "Release notes are valid"

// Result is the verdict of Validate.
type Result struct {
	Valid   bool
	Message string
	Reason  Reason
	// Category names the offending category when Reason is ReasonEmptyCategory.
	Category Category
	// Categories is nil unless Reason is ReasonValid.
	Categories CategoryMap
}

// Validate checks the release notes section of a PR body. Opting out with
// NONE counts as valid but carries no categories.
func Validate(body string) Result {
	section, ok := ExtractSection(body)
	if !ok {
		return Result{
			Reason:  ReasonMissingSection,
			Message: "Release notes section not found: add a '## Release Notes' heading to the PR description (write NONE under it to opt out)",
		}
	}

	if IsOptOut(section) {
		return Result{
			Valid:   true,
			Reason:  ReasonOptOut,
			Message: "Release notes opted out (NONE)",
		}
	}

	s := scanContent(CleanContent(section))

	// Empty headings are reported first so a lone "### Fixed" names Fixed
	// rather than the generic no-category message.
	if empty := s.emptyHeadings(); len(empty) > 0 {
		return Result{
			Reason:   ReasonEmptyCategory,
			Category: empty[0],
			Message:  fmt.Sprintf("Release notes category '%s' has no entries: add at least one bullet under '### %s' or remove the heading", empty[0], empty[0]),
		}
	}

	if s.categories.IsEmpty() {
		return Result{
			Reason:  ReasonNoCategories,
			Message: fmt.Sprintf("Release notes must contain at least one valid category with entries (%s)", categoryList()),
		}
	}

	return Result{
		Valid:      true,
		Reason:     ReasonValid,
		Message:    MessageValid,
		Categories: s.categories,
	}
}

func categoryList() string {
	names := make([]string, len(categoryOrder))
	for i, c := range categoryOrder {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
