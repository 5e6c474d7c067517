package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/releasenotes"
)

// RenderOptions controls markdown rendering.
type RenderOptions struct {
	// RepoURL is the repository web URL used for version comparison links.
	// Empty omits the footer links.
	RepoURL string
}

// RenderMarkdown generates a Keep a Changelog formatted markdown document
// from the given Changelog (https://keepachangelog.com/en/1.1.0/).
//
// The function is idempotent - given the same input, it produces identical output.
func RenderMarkdown(c *Changelog, w io.Writer, opts RenderOptions) error {
	if err := renderHeader(c, w); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for i := range c.Versions {
		v := &c.Versions[i]
		if err := renderVersion(v, w, i == 0); err != nil {
			return fmt.Errorf("rendering version %s: %w", v.Version, err)
		}
	}

	if err := renderFooterLinks(c, w, strings.TrimSuffix(opts.RepoURL, "/")); err != nil {
		return fmt.Errorf("rendering footer links: %w", err)
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(c *Changelog, opts RenderOptions) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(c, &b, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderVersion writes a version's changes as "### Category" blocks
// separated by blank lines, suitable for GitHub release notes.
func RenderVersion(v *Version, w io.Writer) error {
	first := true
	for _, cat := range releasenotes.Categories() {
		entries := v.Changes.Get(cat)
		if len(entries) == 0 {
			continue
		}
		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		first = false

		if err := writeCategory(w, cat, entries); err != nil {
			return err
		}
	}
	return nil
}

// renderHeader writes the standard Keep a Changelog header.
func renderHeader(c *Changelog, w io.Writer) error {
	header := `# Changelog

All notable changes to ` + c.Project + ` will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

`
	_, err := io.WriteString(w, header)
	return err
}

// renderVersion writes a single version section with all its changes.
func renderVersion(v *Version, w io.Writer, isFirst bool) error {
	if !isFirst {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, formatVersionHeader(v)+"\n"); err != nil {
		return err
	}

	for _, cat := range releasenotes.Categories() {
		entries := v.Changes.Get(cat)
		if len(entries) == 0 {
			continue
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := writeCategory(w, cat, entries); err != nil {
			return err
		}
	}

	return nil
}

// writeCategory writes a "### Category" heading followed by its bullets.
func writeCategory(w io.Writer, cat releasenotes.Category, entries []string) error {
	if _, err := io.WriteString(w, "### "+cat.String()+"\n"); err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := io.WriteString(w, "- "+entry+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// formatVersionHeader formats the version header line.
func formatVersionHeader(v *Version) string {
	if v.IsUnreleased() {
		return "## [Unreleased]"
	}
	return fmt.Sprintf("## [%s] - %s", v.Version, v.Date)
}

// renderFooterLinks writes the version comparison links at the end of the file.
func renderFooterLinks(c *Changelog, w io.Writer, repoURL string) error {
	if repoURL == "" {
		return nil
	}

	var links []string
	for i, v := range c.Versions {
		if link := formatVersionLink(v, c.Versions, i, repoURL); link != "" {
			links = append(links, link)
		}
	}
	if len(links) == 0 {
		return nil
	}

	_, err := io.WriteString(w, "\n"+strings.Join(links, "\n")+"\n")
	return err
}

// formatVersionLink creates a single version comparison link.
func formatVersionLink(v Version, versions []Version, index int, repoURL string) string {
	hasPrev := index+1 < len(versions)

	if v.IsUnreleased() {
		if hasPrev {
			return fmt.Sprintf("[Unreleased]: %s/compare/v%s...HEAD", repoURL, versions[index+1].Version)
		}
		return ""
	}

	if hasPrev {
		return fmt.Sprintf("[%s]: %s/compare/v%s...v%s", v.Version, repoURL, versions[index+1].Version, v.Version)
	}
	return fmt.Sprintf("[%s]: %s/releases/tag/v%s", v.Version, repoURL, v.Version)
}
