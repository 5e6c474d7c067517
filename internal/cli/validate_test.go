package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/relnotes/internal/ci"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/releasenotes"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSources_PreservesOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var sources []string
	for i := 0; i < 12; i++ {
		body := validBody
		if i%3 == 0 {
			body = "no section here"
		}
		path := filepath.Join(dir, fmt.Sprintf("body-%02d.md", i))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		sources = append(sources, path)
	}

	results, err := validateSources(context.Background(), sources, strings.NewReader(""), 3)
	require.NoError(t, err)
	require.Len(t, results, len(sources))

	for i, r := range results {
		assert.Equal(t, sources[i], r.Name)
		assert.Equal(t, i%3 != 0, r.Result.Valid, "result %d", i)
	}
}

func TestValidateSources_Stdin(t *testing.T) {
	t.Parallel()

	results, err := validateSources(context.Background(), []string{"-"}, strings.NewReader("## Release Notes\nNONE"), 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "stdin", results[0].Name)
	assert.Equal(t, releasenotes.ReasonOptOut, results[0].Result.Reason)
}

func TestValidateSources_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		sources  []string
		category clierrors.ErrorCategory
		contains string
	}{
		"missing file": {
			sources:  []string{filepath.Join(t.TempDir(), "missing.md")},
			category: clierrors.Prerequisite,
			contains: "file not found",
		},
		"stdin twice": {
			sources:  []string{"-", "-"},
			category: clierrors.Argument,
			contains: "only be given once",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := validateSources(context.Background(), tt.sources, strings.NewReader(""), 2)
			require.Error(t, err)
			cliErr := clierrors.AsCLIError(err)
			require.NotNil(t, cliErr)
			assert.Equal(t, tt.category, cliErr.Category)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestReportResults(t *testing.T) {
	t.Parallel()

	results := []namedResult{
		{Name: "a.md", Result: releasenotes.Validate(validBody)},
		{Name: "b.md", Result: releasenotes.Validate("## Release Notes\nnone")},
		{Name: "c.md", Result: releasenotes.Validate("## Release Notes\n\n### Fixed\n")},
	}

	var out, errOut, annotations strings.Builder
	invalid := reportResults(&out, &errOut, ci.NewReporter(&annotations), results, true)

	assert.Equal(t, 1, invalid)
	assert.Equal(t,
		"✓ a.md: Release notes are valid (1 added, 1 fixed)\n"+
			"✓ b.md: Release notes opted out (NONE)\n"+
			"✗ c.md: "+results[2].Result.Message+"\n",
		out.String())
	assert.Contains(t, errOut.String(), "Error [Validation Error]")
	assert.Contains(t, errOut.String(), "'### Fixed'")
	assert.Contains(t, annotations.String(), "::notice title=Release notes::Release notes opted out (NONE)\n")
	assert.Contains(t, annotations.String(), "::error title=Release notes::Release notes category 'Fixed' has no entries")
}

func TestRunValidate_Files(t *testing.T) {
	env := newTestEnv(t)
	good := env.writeFile(t, "good.md", validBody)
	bad := env.writeFile(t, "bad.md", "Just a description")

	stdout, _, err := env.run(t, runValidate, addEventFlag, good)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ "+good)

	stdout, stderr, err := env.run(t, runValidate, addEventFlag, good, bad)
	require.Error(t, err)
	assert.Equal(t, ExitValidationFailed, ExitCode(err))
	assert.Contains(t, stdout, "✗ "+bad+": Release notes section not found")
	assert.Contains(t, stderr, "## Release Notes")
}

func TestRunValidate_EventAndOutputs(t *testing.T) {
	env := newTestEnv(t)
	event := env.writeFile(t, "event.json", `{"pull_request": {"number": 9, "body": "## Release Notes\n\n### Security\n- Patched CVE", "user": {"login": "amy"}}}`)
	outputPath := filepath.Join(env.dir, "github_output")
	summaryPath := filepath.Join(env.dir, "step_summary")
	t.Setenv(ci.EnvOutput, outputPath)
	t.Setenv(ci.EnvStepSummary, summaryPath)

	stdout, _, err := env.run(t, runValidate, addEventFlag, "--event", event)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ PR #9: Release notes are valid (1 security)")

	output, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "valid=true\nreason=valid\n", string(output))

	summary, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(summary), "### Security\n- Patched CVE\n")
}

func TestRunValidate_NoInput(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, runValidate, addEventFlag)
	require.Error(t, err)
	assert.Equal(t, ExitMissingDependencies, ExitCode(err))
	assert.Contains(t, err.Error(), "no pull request description found")
}

func TestRunValidate_EnvBody(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("RELNOTES_PR_BODY", "## Release Notes\n\n### Removed\n")

	stdout, _, err := env.run(t, runValidate, addEventFlag)
	require.Error(t, err)
	assert.Equal(t, ExitValidationFailed, ExitCode(err))
	assert.Contains(t, stdout, "✗ pull request: Release notes category 'Removed' has no entries")
}

func TestSummaryMarkdown(t *testing.T) {
	t.Parallel()

	got := summaryMarkdown(namedResult{Name: "PR #1", Result: releasenotes.Validate("nothing")})
	assert.True(t, strings.HasPrefix(got, "## ❌ Release notes (PR #1)\n\n"))
	assert.NotContains(t, got, "###")
}

func TestNewReporter_OutsideCI(t *testing.T) {
	t.Setenv(ci.EnvActions, "")

	var out strings.Builder
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	newReporter(cmd).Error("t", "m")
	assert.Empty(t, out.String())
}
