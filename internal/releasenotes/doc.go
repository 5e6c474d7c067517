// Package releasenotes extracts and validates the "Release Notes" section of a
// pull request description and renders it as Keep a Changelog entries.
//
// The package is a pure pipeline over strings:
//   - ExtractSection locates the section under the "## Release Notes" heading
//   - CleanContent strips HTML comments and collapses blank-line runs
//   - IsOptOut recognizes the NONE opt-out token
//   - Parse groups bullet entries under the six valid category headings
//   - Validate combines the steps above into a pass/fail Result
//   - FormatForChangelog renders parsed categories with PR attribution
//
// Nothing here performs I/O, so every function is safe for concurrent use.
package releasenotes
