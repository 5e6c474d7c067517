// Package changelog maintains the project's YAML-first changelog.
//
// This package implements:
//   - CHANGELOG.yaml parsing, validation and saving
//   - Merging a pull request's release notes into the unreleased version
//   - Cutting a release from the unreleased version
//   - Markdown generation following Keep a Changelog format
//   - Colored terminal previews of parsed release notes
//
// CHANGELOG.yaml is the single source of truth; CHANGELOG.md is always
// generated from it by RenderMarkdown.
package changelog
