package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ariel-frischer/relnotes/internal/ci"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/spf13/cobra"
)

// stdinArg names standard input in file arguments.
const stdinArg = "-"

// readSource reads a PR body from path, or from stdin when path is "-".
func readSource(path string, stdin io.Reader) (string, error) {
	if path == stdinArg {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", clierrors.NewPrerequisiteError(
				fmt.Sprintf("file not found: %s", path),
				"Check the path, or use - to read the PR description from stdin",
			)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// addEventFlag registers --event on cmd.
func addEventFlag(cmd *cobra.Command) {
	cmd.Flags().String("event", "", "Path to a GitHub event payload (default: $GITHUB_EVENT_PATH)")
}

// addPullRequestFlags registers the attribution overrides on cmd.
func addPullRequestFlags(cmd *cobra.Command) {
	addEventFlag(cmd)
	cmd.Flags().Int("pr", 0, "Pull request number")
	cmd.Flags().String("pr-url", "", "Pull request URL (default: <repo_url>/pull/<pr>)")
	cmd.Flags().String("author", "", "Pull request author handle")
	cmd.Flags().String("author-url", "", "Author profile URL (default: <server_url>/<author>)")
}

// loadPullRequest reads pull-request context from the event payload and
// RELNOTES_PR_* variables, then applies any flags the user set.
func loadPullRequest(cmd *cobra.Command) (*ci.PullRequest, error) {
	eventPath, _ := cmd.Flags().GetString("event")
	pr, err := ci.LoadPullRequest(eventPath)
	if err != nil {
		return nil, WithExitCode(ExitMissingDependencies, clierrors.WrapWithMessage(err,
			clierrors.Prerequisite,
			"failed to read pull request context",
			"Check that the event payload is valid JSON",
			"Check the RELNOTES_PR_* environment variables",
		))
	}

	flags := cmd.Flags()
	if flags.Lookup("pr") == nil {
		return pr, nil
	}
	if flags.Changed("pr") {
		pr.Number, _ = flags.GetInt("pr")
	}
	if flags.Changed("pr-url") {
		pr.URL, _ = flags.GetString("pr-url")
	}
	if flags.Changed("author") {
		pr.Author, _ = flags.GetString("author")
	}
	if flags.Changed("author-url") {
		pr.AuthorURL, _ = flags.GetString("author-url")
	}
	return pr, nil
}

// attributedPullRequest loads the pull request and fills derived URLs,
// failing when a field needed for attribution is still unknown.
func attributedPullRequest(cmd *cobra.Command, cfg *config.Configuration) (*ci.PullRequest, error) {
	pr, err := loadPullRequest(cmd)
	if err != nil {
		return nil, err
	}

	repoURL := ""
	if pr.URL == "" {
		repoURL = resolveRepoURL(cfg)
	}
	pr.Complete(repoURL, cfg.ServerURL)

	switch {
	case pr.Number <= 0:
		return nil, clierrors.MissingPRNumber()
	case pr.Author == "":
		return nil, clierrors.MissingAuthor()
	case pr.URL == "":
		return nil, clierrors.MissingRepoURL()
	}
	return pr, nil
}

// bodyInput is one PR description to check.
type bodyInput struct {
	Name string
	Body string
}

// readBody returns the PR description from the file argument, or from the
// pull-request context when no argument is given.
func readBody(cmd *cobra.Command, args []string, pr *ci.PullRequest) (bodyInput, error) {
	if len(args) > 0 {
		body, err := readSource(args[0], cmd.InOrStdin())
		if err != nil {
			return bodyInput{}, err
		}
		return bodyInput{Name: displayName(args[0]), Body: body}, nil
	}

	if pr == nil || pr.Source == ci.SourceNone {
		return bodyInput{}, clierrors.MissingPRBody()
	}
	return bodyInput{Name: pullRequestName(pr), Body: pr.Body}, nil
}

func displayName(path string) string {
	if path == stdinArg {
		return "stdin"
	}
	return path
}

func pullRequestName(pr *ci.PullRequest) string {
	if pr.Number > 0 {
		return fmt.Sprintf("PR #%d", pr.Number)
	}
	return "pull request"
}
