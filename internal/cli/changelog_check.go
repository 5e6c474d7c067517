package cli

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/spf13/cobra"
)

var changelogCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate CHANGELOG.md matches CHANGELOG.yaml",
	Long: `Validate that CHANGELOG.md is in sync with the YAML source.

This command compares the current CHANGELOG.md with what would be
generated from CHANGELOG.yaml. Returns exit code 0 if in sync,
or exit code 1 with a useful message if out of sync.`,
	Example: `  relnotes changelog check`,
	Args:    cobra.NoArgs,
	RunE:    runChangelogCheck,
}

func init() {
	changelogCmd.AddCommand(changelogCheckCmd)
}

func runChangelogCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := loadChangelog(cfg)
	if err != nil {
		return err
	}

	expected, err := changelog.RenderMarkdownString(log, renderOptions(cfg))
	if err != nil {
		return fmt.Errorf("rendering expected markdown: %w", err)
	}

	actual, err := os.ReadFile(cfg.ChangelogMD)
	if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", cfg.ChangelogMD, err)
	}

	if !bytes.Equal([]byte(expected), actual) {
		output.PrintFailure(cmd.OutOrStdout(), fmt.Sprintf("%s is out of sync with %s", cfg.ChangelogMD, cfg.ChangelogYAML))
		return clierrors.ChangelogOutOfSync(cfg.ChangelogMD, cfg.ChangelogYAML)
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s is in sync with %s", cfg.ChangelogMD, cfg.ChangelogYAML))
	return nil
}
