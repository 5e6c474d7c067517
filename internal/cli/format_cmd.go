package cli

import (
	"fmt"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/releasenotes"
	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Print the PR's release notes as an attributed changelog fragment",
	Long: `Validate the PR description and print its release notes as Keep a Changelog
markdown. Each entry without a link to the PR gets a "([#N](url) by
[author](profile))" suffix.

The PR number, URL and author come from the GitHub Actions event payload,
RELNOTES_PR_* variables, or flags. An opted-out PR prints nothing.

In GitHub Actions the fragment is also written to the "fragment" step output.`,
	Example: `  # In a pull_request workflow
  relnotes format

  # Locally
  relnotes format pr-body.md --pr 42 --author octocat`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func init() {
	formatCmd.GroupID = GroupReleaseNotes
	rootCmd.AddCommand(formatCmd)
	addPullRequestFlags(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pr, err := attributedPullRequest(cmd, cfg)
	if err != nil {
		return err
	}

	in, err := readBody(cmd, args, pr)
	if err != nil {
		return err
	}

	result := releasenotes.Validate(in.Body)
	reporter := newReporter(cmd)

	switch {
	case result.Reason == releasenotes.ReasonOptOut:
		reporter.Notice("Release notes", result.Message)
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", result.Message)
		return nil
	case !result.Valid:
		reporter.Error("Release notes", result.Message)
		return WithExitCode(ExitValidationFailed, clierrors.InvalidReleaseNotes(result))
	}

	fragment := releasenotes.FormatForChangelog(result.Categories, pr.Attribution())
	fmt.Fprintln(cmd.OutOrStdout(), fragment)

	return reporter.SetOutput("fragment", fragment)
}
