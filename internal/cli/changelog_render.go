package cli

import (
	"fmt"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/spf13/cobra"
)

var changelogRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Regenerate CHANGELOG.md from CHANGELOG.yaml",
	Long: `Regenerate the markdown changelog from the YAML source file, following the
Keep a Changelog format. Version comparison links use repo_url, or the git
origin remote when repo_url is not set.

The output is idempotent: rendering twice from the same YAML produces
identical files.`,
	Example: `  relnotes changelog render
  relnotes changelog render --stdout`,
	Args: cobra.NoArgs,
	RunE: runChangelogRender,
}

func init() {
	changelogCmd.AddCommand(changelogRenderCmd)
	changelogRenderCmd.Flags().Bool("stdout", false, "Print the markdown instead of writing changelog_md")
}

func runChangelogRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := loadChangelog(cfg)
	if err != nil {
		return err
	}

	if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
		return changelog.RenderMarkdown(log, cmd.OutOrStdout(), renderOptions(cfg))
	}

	if err := writeMarkdown(cfg, log); err != nil {
		return err
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Rendered %s → %s", cfg.ChangelogYAML, cfg.ChangelogMD))
	return nil
}
