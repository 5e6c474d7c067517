// Package ci reads pull-request context from a CI environment and reports
// results back to it. The GitHub Actions event payload is the primary
// source, with RELNOTES_PR_* environment variables layered on top.
package ci

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/releasenotes"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// GitHub Actions environment variables.
const (
	EnvActions     = "GITHUB_ACTIONS"
	EnvEventPath   = "GITHUB_EVENT_PATH"
	EnvOutput      = "GITHUB_OUTPUT"
	EnvStepSummary = "GITHUB_STEP_SUMMARY"
)

// PREnvPrefix prefixes the pull-request override variables
// (RELNOTES_PR_NUMBER, RELNOTES_PR_BODY, ...).
const PREnvPrefix = "RELNOTES_PR_"

// Source records where pull-request context came from.
type Source string

const (
	SourceNone  Source = ""
	SourceEvent Source = "event"
	SourceEnv   Source = "env"
)

// PullRequest is the pull-request context relnotes works on.
type PullRequest struct {
	Number    int
	Title     string
	Body      string
	URL       string
	Author    string
	AuthorURL string
	// Source is SourceNone when neither an event nor overrides were found.
	Source Source
}

var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for CI operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Detect reports whether relnotes runs inside GitHub Actions.
func Detect() bool {
	return os.Getenv(EnvActions) == "true"
}

// LoadPullRequest reads the event payload at eventPath (GITHUB_EVENT_PATH
// when empty) and applies RELNOTES_PR_* overrides. A missing payload is not
// an error; the returned PullRequest then has Source SourceNone unless an
// override was set.
func LoadPullRequest(eventPath string) (*PullRequest, error) {
	if eventPath == "" {
		eventPath = os.Getenv(EnvEventPath)
	}

	pr := &PullRequest{}

	if eventPath != "" {
		if err := loadEvent(pr, eventPath); err != nil {
			return nil, err
		}
	}

	if err := loadOverrides(pr); err != nil {
		return nil, err
	}

	return pr, nil
}

// loadEvent fills pr from a GitHub webhook payload. Payloads without a
// pull_request object (push, workflow_dispatch) leave pr untouched.
func loadEvent(pr *PullRequest, path string) error {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("loading event payload %s: %w", path, err)
	}

	if !k.Exists("pull_request") {
		logDebug("[ci] event payload %s has no pull_request", path)
		return nil
	}

	pr.Number = k.Int("pull_request.number")
	pr.Title = k.String("pull_request.title")
	pr.Body = k.String("pull_request.body")
	pr.URL = k.String("pull_request.html_url")
	pr.Author = k.String("pull_request.user.login")
	pr.AuthorURL = k.String("pull_request.user.html_url")
	pr.Source = SourceEvent

	logDebug("[ci] loaded pull request #%d by %s from %s", pr.Number, pr.Author, path)
	return nil
}

// loadOverrides applies RELNOTES_PR_* variables over the event values.
func loadOverrides(pr *PullRequest) error {
	k := koanf.New(".")
	cb := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, PREnvPrefix))
	}
	if err := k.Load(env.Provider(PREnvPrefix, ".", cb), nil); err != nil {
		return fmt.Errorf("loading %s* overrides: %w", PREnvPrefix, err)
	}

	if k.Exists("number") {
		raw := strings.TrimPrefix(strings.TrimSpace(k.String("number")), "#")
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("%sNUMBER must be a positive integer, got %q", PREnvPrefix, k.String("number"))
		}
		pr.Number = n
	}

	fields := map[string]*string{
		"title":      &pr.Title,
		"body":       &pr.Body,
		"url":        &pr.URL,
		"author":     &pr.Author,
		"author_url": &pr.AuthorURL,
	}
	for key, dst := range fields {
		if k.Exists(key) {
			*dst = k.String(key)
		}
	}

	if len(k.Keys()) > 0 && pr.Source == SourceNone {
		pr.Source = SourceEnv
	}
	return nil
}

// Complete fills the PR URL from repoURL and the author profile URL from
// serverURL when they are not already known.
func (pr *PullRequest) Complete(repoURL, serverURL string) {
	repoURL = strings.TrimSuffix(repoURL, "/")
	serverURL = strings.TrimSuffix(serverURL, "/")

	if pr.URL == "" && pr.Number > 0 && repoURL != "" {
		pr.URL = fmt.Sprintf("%s/pull/%d", repoURL, pr.Number)
	}
	if pr.AuthorURL == "" && pr.Author != "" && serverURL != "" {
		pr.AuthorURL = serverURL + "/" + pr.Author
	}
}

// Attribution returns the changelog attribution for the pull request.
func (pr *PullRequest) Attribution() releasenotes.Attribution {
	return releasenotes.Attribution{
		Number:    pr.Number,
		URL:       pr.URL,
		Author:    pr.Author,
		AuthorURL: pr.AuthorURL,
	}
}
