package cli

import (
	stderrors "errors"
	"fmt"
	"log"
	"os"

	"github.com/ariel-frischer/relnotes/internal/ci"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/ariel-frischer/relnotes/internal/watch"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupReleaseNotes = "release-notes"
	GroupChangelog    = "changelog"
	GroupInternal     = "internal"
)

var rootCmd = &cobra.Command{
	Use:   "relnotes",
	Short: "Validate pull request release notes and maintain CHANGELOG.yaml",
	Long: `relnotes checks that a pull request description carries a "## Release Notes"
section with Keep a Changelog categories, formats the entries with PR
attribution, and merges them into a YAML changelog rendered to CHANGELOG.md.

Authors opt out by writing NONE as the only content of the section.`,
	Example: `  # Validate the PR in a GitHub Actions pull_request workflow
  relnotes validate

  # Validate a local draft
  relnotes validate pr-body.md

  # Merge the PR's notes into the changelog after merge
  relnotes changelog append`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		configureDebug(debug)
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupReleaseNotes, Title: "Release Notes:"},
		&cobra.Group{ID: GroupChangelog, Title: "Changelog:"},
		&cobra.Group{ID: GroupInternal, Title: "Other Commands:"},
	)
	rootCmd.SetHelpCommandGroupID(GroupInternal)
	rootCmd.SetCompletionCommandGroupID(GroupInternal)

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default: .relnotes.yml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// Execute runs the root command and prints any error. Errors carrying only
// an exit code are not printed again.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if !stderrors.As(err, &exitErr) || exitErr.Err != nil {
		clierrors.FprintError(os.Stderr, err)
	}
	return err
}

// configureDebug routes package debug output to the standard logger.
func configureDebug(enabled bool) {
	if !enabled {
		git.SetDebugLogger(nil)
		ci.SetDebugLogger(nil)
		watch.SetDebugLogger(nil)
		return
	}

	logger := log.New(os.Stderr, "[debug] ", log.Ltime)
	git.SetDebugLogger(logger.Printf)
	ci.SetDebugLogger(logger.Printf)
	watch.SetDebugLogger(logger.Printf)
}

// loadConfig loads configuration honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, WithExitCode(ExitInvalidArguments, clierrors.WrapWithMessage(err,
			clierrors.Configuration,
			"failed to load config",
			fmt.Sprintf("Check %s for typos or invalid values", displayConfigPath(configPath)),
		))
	}
	return cfg, nil
}

func displayConfigPath(configPath string) string {
	if configPath != "" {
		return configPath
	}
	return config.ProjectConfigPath()
}

// resolveRepoURL returns the configured repository URL, falling back to the
// git origin remote.
func resolveRepoURL(cfg *config.Configuration) string {
	if cfg.RepoURL != "" {
		return cfg.RepoURL
	}
	url, err := git.RepositoryWebURL("")
	if err != nil {
		log.Printf("[cli] could not resolve repository URL from git: %v", err)
		return ""
	}
	return url
}
