package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/ariel-frischer/relnotes/internal/releasenotes"
	"github.com/fatih/color"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps categories to their terminal styling.
var categoryStyles = map[releasenotes.Category]CategoryStyle{
	releasenotes.Added:      {Color: color.New(color.FgGreen), Icon: "✓"},
	releasenotes.Changed:    {Color: color.New(color.FgBlue), Icon: "~"},
	releasenotes.Deprecated: {Color: color.New(color.FgRed), Icon: "⚠"},
	releasenotes.Removed:    {Color: color.New(color.FgRed), Icon: "✗"},
	releasenotes.Fixed:      {Color: color.New(color.FgYellow), Icon: "⚡"},
	releasenotes.Security:   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes parsed release notes to w grouped by category in
// Keep a Changelog order, with color-coded headers unless opts.Plain is set.
func FormatTerminal(categories releasenotes.CategoryMap, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	first := true
	for _, cat := range releasenotes.Categories() {
		entries := categories[cat]
		if len(entries) == 0 {
			continue
		}
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false

		if err := writeCategorySection(cat, entries, w, opts, width); err != nil {
			return fmt.Errorf("formatting %s: %w", cat, err)
		}
	}

	return nil
}

// writeCategorySection writes a single category with its entries.
func writeCategorySection(cat releasenotes.Category, entries []string, w io.Writer, opts FormatOptions, width int) error {
	style := categoryStyles[cat]

	if err := writeCategoryHeader(cat, style, w, opts); err != nil {
		return err
	}

	for _, entry := range entries {
		if err := writeEntry(entry, style, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeCategoryHeader writes the category header line.
func writeCategoryHeader(cat releasenotes.Category, style CategoryStyle, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "### %s\n", cat)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s %s\n", colored(style.Icon), colored(cat.String()))
	return err
}

// writeEntry writes a single entry, wrapping long lines when colored.
func writeEntry(text string, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	return output.GetTerminalWidth()
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Break at the last space within maxWidth, or hard-break a long word.
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// Summary returns a one-line count of entries per category, e.g.
// "2 added, 1 fixed".
func Summary(categories releasenotes.CategoryMap) string {
	var parts []string
	for _, cat := range releasenotes.Categories() {
		if n := len(categories[cat]); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, categoryKey(cat)))
		}
	}
	if len(parts) == 0 {
		return "no entries"
	}
	return strings.Join(parts, ", ")
}
