package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/ariel-frischer/relnotes/internal/releasenotes"
	"github.com/spf13/cobra"
)

var changelogAppendCmd = &cobra.Command{
	Use:   "append [file]",
	Short: "Merge the PR's release notes into the unreleased changelog",
	Long: `Validate the PR description, attribute each entry to the PR and its author,
and merge the entries into the "unreleased" version of CHANGELOG.yaml.
CHANGELOG.md is regenerated afterwards.

Entries already present in the unreleased version are skipped, so running
append twice for the same PR changes nothing. An opted-out PR (NONE) is a
successful no-op. A missing CHANGELOG.yaml is created using the configured
project name.`,
	Example: `  # After merge, in a push workflow with RELNOTES_PR_* set
  relnotes changelog append

  # Locally
  relnotes changelog append pr-body.md --pr 42 --author octocat

  # Show what would be merged
  relnotes changelog append pr-body.md --pr 42 --author octocat --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChangelogAppend,
}

func init() {
	changelogCmd.AddCommand(changelogAppendCmd)
	addPullRequestFlags(changelogAppendCmd)
	changelogAppendCmd.Flags().Bool("dry-run", false, "Print the entries that would be merged without writing files")
}

func runChangelogAppend(cmd *cobra.Command, args []string) error {
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
	switch {
	case result.Reason == releasenotes.ReasonOptOut:
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s; changelog unchanged\n", in.Name, result.Message)
		return nil
	case !result.Valid:
		return WithExitCode(ExitValidationFailed, clierrors.InvalidReleaseNotes(result))
	}

	entries := releasenotes.Attribute(result.Categories, pr.Attribution())

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), releasenotes.FormatForChangelog(result.Categories, pr.Attribution()))
		return nil
	}

	log, err := loadChangelog(cfg)
	if err != nil {
		var cliErr *clierrors.CLIError
		if !stderrors.As(err, &cliErr) || cliErr.Category != clierrors.Prerequisite {
			return err
		}
		log = &changelog.Changelog{Project: cfg.Project}
		output.PrintInfo(cmd.OutOrStdout(), fmt.Sprintf("Creating %s for %s", cfg.ChangelogYAML, cfg.Project))
	}

	added := log.Merge(entries)
	if added == 0 {
		output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s entries already in %s", pullRequestName(pr), cfg.ChangelogYAML))
		return nil
	}

	if err := saveChangelog(cfg, log); err != nil {
		return err
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Added %d %s from %s to %s",
		added, pluralize(added, "entry", "entries"), pullRequestName(pr), cfg.ChangelogYAML))
	output.PrintSuccess(cmd.OutOrStdout(), "Rendered "+cfg.ChangelogMD)
	return nil
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
