package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/releasenotes"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Show the parsed release notes in the terminal",
	Long: `Parse a PR description and show its release notes grouped by category,
with colored headers. Use --plain (or plain: true in config) for output
without colors or icons.

Without a file argument the description comes from the pull-request
context, as for validate.`,
	Example: `  relnotes preview pr-body.md
  relnotes preview pr-body.md --plain
  gh pr view 42 --json body -q .body | relnotes preview -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.GroupID = GroupReleaseNotes
	rootCmd.AddCommand(previewCmd)
	addEventFlag(previewCmd)
	previewCmd.Flags().Bool("plain", false, "Plain text output (no colors/icons)")
	previewCmd.Flags().Int("width", 0, "Wrap entries at this width (default: terminal width)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	plain := cfg.Plain
	if cmd.Flags().Changed("plain") {
		plain, _ = cmd.Flags().GetBool("plain")
	}
	width, _ := cmd.Flags().GetInt("width")

	var in bodyInput
	if len(args) > 0 {
		in, err = readBody(cmd, args, nil)
	} else {
		pr, prErr := loadPullRequest(cmd)
		if prErr != nil {
			return prErr
		}
		in, err = readBody(cmd, nil, pr)
	}
	if err != nil {
		return err
	}

	result := releasenotes.Validate(in.Body)
	opts := changelog.FormatOptions{Plain: plain, MaxWidth: width}
	if err := renderPreview(cmd.OutOrStdout(), in, result, opts); err != nil {
		return err
	}

	if !result.Valid {
		printCLIError(cmd.ErrOrStderr(), clierrors.InvalidReleaseNotes(result), plain)
		return NewExitError(ExitValidationFailed)
	}
	return nil
}

// renderPreview writes the parsed categories for in. Invalid notes still
// show whatever was parsed so authors can see what the checker saw.
func renderPreview(w io.Writer, in bodyInput, result releasenotes.Result, opts changelog.FormatOptions) error {
	if result.Reason == releasenotes.ReasonOptOut {
		_, err := fmt.Fprintf(w, "%s: %s\n", in.Name, result.Message)
		return err
	}

	categories := result.Categories
	if categories == nil {
		if section, ok := releasenotes.ExtractSection(in.Body); ok {
			categories = releasenotes.Parse(releasenotes.CleanContent(section))
		}
	}

	if _, err := fmt.Fprintf(w, "%s: %s\n\n", in.Name, changelog.Summary(categories)); err != nil {
		return err
	}
	if categories.IsEmpty() {
		return nil
	}
	if err := changelog.FormatTerminal(categories, w, opts); err != nil {
		return fmt.Errorf("formatting preview: %w", err)
	}
	return nil
}
