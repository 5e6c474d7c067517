package cli

import (
	"fmt"
	"time"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/spf13/cobra"
)

var changelogReleaseCmd = &cobra.Command{
	Use:   "release <version>",
	Short: "Turn the unreleased changes into a dated release",
	Long: `Rename the "unreleased" version of CHANGELOG.yaml to <version>, dated today
(or --date), and regenerate CHANGELOG.md. The version must be a semantic
version that is not already in the changelog; a leading "v" is dropped.`,
	Example: `  relnotes changelog release 1.4.0
  relnotes changelog release v1.4.0 --date 2026-03-01`,
	Args: cobra.ExactArgs(1),
	RunE: runChangelogRelease,
}

func init() {
	changelogCmd.AddCommand(changelogReleaseCmd)
	changelogReleaseCmd.Flags().String("date", "", "Release date as YYYY-MM-DD (default: today)")
}

func runChangelogRelease(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	log, err := loadChangelog(cfg)
	if err != nil {
		return err
	}

	if err := log.Release(args[0], date); err != nil {
		if changelog.IsValidationError(err) {
			return WithExitCode(ExitInvalidArguments, clierrors.NewArgumentErrorWithUsage(
				err.Error(),
				"relnotes changelog release <X.Y.Z> [--date YYYY-MM-DD]",
			))
		}
		return clierrors.NewPrerequisiteError(err.Error(),
			"Merge release notes first: relnotes changelog append",
		)
	}

	if err := saveChangelog(cfg, log); err != nil {
		return err
	}

	released := log.Versions[0]
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Released %s (%s) with %d %s",
		released.Version, released.Date, released.Changes.Count(),
		pluralize(released.Changes.Count(), "entry", "entries")))
	return nil
}
