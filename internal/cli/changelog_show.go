package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/spf13/cobra"
)

var changelogShowCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "Print the release notes for a version",
	Long: `Print the changes recorded for a version as markdown, in a format suitable
for GitHub release notes. Defaults to the unreleased changes.

Use --pretty for a colored terminal view instead.`,
	Example: `  relnotes changelog show            # unreleased changes
  relnotes changelog show v1.4.0     # v prefix optional
  relnotes changelog show 1.4.0 --pretty`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChangelogShow,
}

func init() {
	changelogCmd.AddCommand(changelogShowCmd)
	changelogShowCmd.Flags().Bool("pretty", false, "Colored terminal output")
}

func runChangelogShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := loadChangelog(cfg)
	if err != nil {
		return err
	}

	version := changelog.Unreleased
	if len(args) == 1 {
		version = args[0]
	}

	v, err := log.GetVersion(version)
	if err != nil {
		var notFound *changelog.VersionNotFoundError
		if stderrors.As(err, &notFound) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found.\n\n", version)
			fmt.Fprintf(cmd.ErrOrStderr(), "Available versions:\n")
			for _, ver := range notFound.AvailableVersions {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", ver)
			}
			return NewExitError(ExitInvalidArguments)
		}
		return fmt.Errorf("getting version: %w", err)
	}

	if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
		return changelog.FormatTerminal(v.Changes.Categories(), cmd.OutOrStdout(), changelog.FormatOptions{Plain: cfg.Plain})
	}
	return changelog.RenderVersion(v, cmd.OutOrStdout())
}
