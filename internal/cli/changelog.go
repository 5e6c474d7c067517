package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/spf13/cobra"
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Maintain CHANGELOG.yaml and the rendered CHANGELOG.md",
	Long: `Maintain the YAML changelog and the Keep a Changelog markdown rendered from it.

CHANGELOG.yaml (changelog_yaml) is the source of truth; CHANGELOG.md
(changelog_md) is generated and should not be edited by hand.`,
	Example: `  relnotes changelog append          # merge the current PR's notes
  relnotes changelog render          # regenerate CHANGELOG.md
  relnotes changelog check           # fail when CHANGELOG.md is stale
  relnotes changelog release 1.4.0   # cut a release from unreleased
  relnotes changelog show 1.4.0      # print release notes for a version`,
}

func init() {
	changelogCmd.GroupID = GroupChangelog
	rootCmd.AddCommand(changelogCmd)
}

// loadChangelog reads the configured YAML changelog.
func loadChangelog(cfg *config.Configuration) (*changelog.Changelog, error) {
	log, err := changelog.Load(cfg.ChangelogYAML)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, clierrors.MissingChangelog(cfg.ChangelogYAML)
		}
		if changelog.IsValidationError(err) {
			return nil, clierrors.WrapWithMessage(err, clierrors.Validation,
				fmt.Sprintf("invalid %s", cfg.ChangelogYAML),
				"Fix the reported field and run the command again",
			)
		}
		return nil, fmt.Errorf("loading %s: %w", cfg.ChangelogYAML, err)
	}
	return log, nil
}

// renderOptions returns markdown options for cfg.
func renderOptions(cfg *config.Configuration) changelog.RenderOptions {
	return changelog.RenderOptions{RepoURL: resolveRepoURL(cfg)}
}

// writeMarkdown renders log to the configured markdown path.
func writeMarkdown(cfg *config.Configuration, log *changelog.Changelog) error {
	content, err := changelog.RenderMarkdownString(log, renderOptions(cfg))
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	if err := os.WriteFile(cfg.ChangelogMD, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.ChangelogMD, err)
	}
	return nil
}

// saveChangelog writes the YAML source and regenerates the markdown.
func saveChangelog(cfg *config.Configuration, log *changelog.Changelog) error {
	if err := changelog.Save(log, cfg.ChangelogYAML); err != nil {
		return fmt.Errorf("saving %s: %w", cfg.ChangelogYAML, err)
	}
	return writeMarkdown(cfg, log)
}
