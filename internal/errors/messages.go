package errors

import (
	"fmt"

	"github.com/ariel-frischer/relnotes/internal/releasenotes"
)

// Common error messages for the relnotes CLI.
// These templates keep CI output consistent and actionable for PR authors.

// releaseNotesTemplate is the skeleton suggested to authors.
const releaseNotesTemplate = "## Release Notes\n\n### Fixed\n- Describe the user-facing change"

// MissingPRBody creates an error when no PR description could be found.
func MissingPRBody() *CLIError {
	return NewPrerequisiteError(
		"no pull request description found",
		"Pass a file containing the PR description: relnotes validate pr-body.md",
		"Or pipe it on stdin: gh pr view --json body -q .body | relnotes validate -",
		"In GitHub Actions, make sure the workflow runs on pull_request events (GITHUB_EVENT_PATH)",
	)
}

// MissingPRNumber creates an error when the PR number cannot be determined.
func MissingPRNumber() *CLIError {
	return NewPrerequisiteError(
		"pull request number is unknown",
		"Pass it explicitly: --pr 123",
		"Or set RELNOTES_PR_NUMBER",
	)
}

// MissingAuthor creates an error when the PR author cannot be determined.
func MissingAuthor() *CLIError {
	return NewPrerequisiteError(
		"pull request author is unknown",
		"Pass it explicitly: --author <github-handle>",
		"Or set RELNOTES_PR_AUTHOR",
	)
}

// MissingRepoURL creates an error when no repository URL can be resolved.
func MissingRepoURL() *CLIError {
	return NewConfigError(
		"repository URL could not be determined",
		"Set repo_url in .relnotes.yml",
		"Or set RELNOTES_REPO_URL",
		"Or pass the PR URL explicitly: --pr-url https://github.com/org/repo/pull/123",
	)
}

// MissingChangelog creates an error when CHANGELOG.yaml does not exist.
func MissingChangelog(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("changelog source not found: %s", path),
		"Create it with a project name: echo 'project: myproject' > "+path,
		"Or point changelog_yaml in .relnotes.yml at the right file",
	)
}

// ChangelogOutOfSync creates an error when CHANGELOG.md differs from its YAML source.
func ChangelogOutOfSync(mdPath, yamlPath string) *CLIError {
	return NewValidationError(
		fmt.Sprintf("%s is out of sync with %s", mdPath, yamlPath),
		"Regenerate it: relnotes changelog render",
	)
}

// InvalidReleaseNotes creates an error describing why release notes failed validation.
func InvalidReleaseNotes(result releasenotes.Result) *CLIError {
	var remediation []string
	switch result.Reason {
	case releasenotes.ReasonMissingSection:
		remediation = []string{
			"Add a release notes section to the PR description:\n\n" + releaseNotesTemplate + "\n",
			"Or opt out by writing NONE under a '## Release Notes' heading",
		}
	case releasenotes.ReasonNoCategories:
		remediation = []string{
			"Group bullets under one of: ### Added, ### Changed, ### Deprecated, ### Removed, ### Fixed, ### Security",
			"Or opt out by writing NONE as the only content of the section",
		}
	case releasenotes.ReasonEmptyCategory:
		remediation = []string{
			fmt.Sprintf("Add at least one '- ' bullet under '### %s'", result.Category),
			fmt.Sprintf("Or delete the empty '### %s' heading", result.Category),
		}
	}
	return NewValidationError(result.Message, remediation...)
}
