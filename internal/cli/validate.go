package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/ci"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/ariel-frischer/relnotes/internal/releasenotes"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check that a PR description has valid release notes",
	Long: `Check that a pull request description contains a "## Release Notes" section
with at least one Keep a Changelog category holding entries, or the NONE
opt-out marker.

Without arguments the description is read from the GitHub Actions event
payload ($GITHUB_EVENT_PATH) or RELNOTES_PR_BODY. Pass files to check local
drafts, or - to read from stdin. Multiple files are checked concurrently
(max_parallel) and reported in argument order.

Exit codes:
  0  release notes are valid or opted out
  1  release notes are invalid
  4  no PR description was found`,
	Example: `  # In a pull_request workflow
  relnotes validate

  # Local drafts
  relnotes validate pr-body.md other.md

  # From the GitHub CLI
  gh pr view 42 --json body -q .body | relnotes validate -`,
	RunE: runValidate,
}

func init() {
	validateCmd.GroupID = GroupReleaseNotes
	rootCmd.AddCommand(validateCmd)
	addEventFlag(validateCmd)
}

// namedResult pairs a validation result with the input it came from.
type namedResult struct {
	Name   string
	Result releasenotes.Result
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var results []namedResult
	if len(args) == 0 {
		pr, err := loadPullRequest(cmd)
		if err != nil {
			return err
		}
		in, err := readBody(cmd, nil, pr)
		if err != nil {
			return err
		}
		results = []namedResult{{Name: in.Name, Result: releasenotes.Validate(in.Body)}}
	} else {
		results, err = validateSources(cmd.Context(), args, cmd.InOrStdin(), cfg.MaxParallel)
		if err != nil {
			return err
		}
	}

	reporter := newReporter(cmd)
	invalid := reportResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), reporter, results, cfg.Plain)

	if len(results) == 1 {
		if err := writeOutputs(reporter, results[0]); err != nil {
			return err
		}
	}

	if invalid > 0 {
		return NewExitError(ExitValidationFailed)
	}
	return nil
}

// validateSources validates each source concurrently, at most limit at a
// time. Results keep the order of sources.
func validateSources(ctx context.Context, sources []string, stdin io.Reader, limit int) ([]namedResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	stdinBody, err := readStdinOnce(sources, stdin)
	if err != nil {
		return nil, err
	}

	results := make([]namedResult, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			body := stdinBody
			if src != stdinArg {
				b, err := readSource(src, nil)
				if err != nil {
					return err
				}
				body = b
			}
			results[i] = namedResult{Name: displayName(src), Result: releasenotes.Validate(body)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// readStdinOnce reads stdin when "-" is among sources. Stdin can only be
// consumed once, so a repeated "-" is rejected.
func readStdinOnce(sources []string, stdin io.Reader) (string, error) {
	count := 0
	for _, src := range sources {
		if src == stdinArg {
			count++
		}
	}
	switch count {
	case 0:
		return "", nil
	case 1:
		return readSource(stdinArg, stdin)
	default:
		return "", clierrors.NewArgumentErrorWithUsage(
			"stdin (-) can only be given once",
			"relnotes validate [file...]",
		)
	}
}

// reportResults prints one line per result and annotates failures in CI.
// Returns the number of invalid results.
func reportResults(out, errOut io.Writer, reporter *ci.Reporter, results []namedResult, plain bool) int {
	invalid := 0
	for _, r := range results {
		switch {
		case r.Result.Reason == releasenotes.ReasonOptOut:
			output.PrintSuccess(out, fmt.Sprintf("%s: %s", r.Name, r.Result.Message))
			reporter.Notice("Release notes", r.Result.Message)
		case r.Result.Valid:
			output.PrintSuccess(out, fmt.Sprintf("%s: %s (%s)", r.Name, r.Result.Message, changelog.Summary(r.Result.Categories)))
		default:
			invalid++
			output.PrintFailure(out, fmt.Sprintf("%s: %s", r.Name, r.Result.Message))
			reporter.Error("Release notes", r.Result.Message)
			printCLIError(errOut, clierrors.InvalidReleaseNotes(r.Result), plain)
		}
	}
	return invalid
}

// writeOutputs records the result as GitHub Actions step outputs.
func writeOutputs(reporter *ci.Reporter, r namedResult) error {
	if err := reporter.SetOutput("valid", strconv.FormatBool(r.Result.Valid)); err != nil {
		return err
	}
	if err := reporter.SetOutput("reason", r.Result.Reason.String()); err != nil {
		return err
	}
	return reporter.AppendSummary(summaryMarkdown(r))
}

// summaryMarkdown renders the result for the job summary.
func summaryMarkdown(r namedResult) string {
	icon := "✅"
	if !r.Result.Valid {
		icon = "❌"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## %s Release notes (%s)\n\n%s\n", icon, r.Name, r.Result.Message)
	if r.Result.Valid && !r.Result.Categories.IsEmpty() {
		b.WriteString("\n")
		v := changelog.Version{Changes: changelog.NewChanges(r.Result.Categories)}
		_ = changelog.RenderVersion(&v, &b)
	}
	return b.String()
}

// newReporter returns a CI reporter writing annotations to stdout when
// running in GitHub Actions, and discarding them otherwise.
func newReporter(cmd *cobra.Command) *ci.Reporter {
	if ci.Detect() {
		return ci.NewReporter(cmd.OutOrStdout())
	}
	return ci.NewReporter(io.Discard)
}

func printCLIError(w io.Writer, err *clierrors.CLIError, plain bool) {
	if plain {
		fmt.Fprint(w, clierrors.FormatErrorPlain(err))
		return
	}
	fmt.Fprint(w, clierrors.FormatError(err))
}
