package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/relnotes/internal/ci"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const validBody = `Adds dark mode.

## Release Notes

### Added
- Dark mode

### Fixed
- Crash on start
`

// testEnv is an isolated workspace with a project config pointing at
// changelog files inside it.
type testEnv struct {
	dir        string
	configPath string
	yamlPath   string
	mdPath     string
}

// newTestEnv clears CI variables inherited from the runner and writes a
// project config. Tests using it cannot run in parallel.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	for _, key := range []string{ci.EnvActions, ci.EnvEventPath, ci.EnvOutput, ci.EnvStepSummary} {
		t.Setenv(key, "")
	}
	for _, key := range []string{"NUMBER", "TITLE", "BODY", "URL", "AUTHOR", "AUTHOR_URL"} {
		t.Setenv(ci.PREnvPrefix+key, "")
		require.NoError(t, os.Unsetenv(ci.PREnvPrefix+key))
	}
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	env := &testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, ".relnotes.yml"),
		yamlPath:   filepath.Join(dir, "CHANGELOG.yaml"),
		mdPath:     filepath.Join(dir, "CHANGELOG.md"),
	}

	cfg := "changelog_yaml: " + env.yamlPath + "\n" +
		"changelog_md: " + env.mdPath + "\n" +
		"project: widget\n" +
		"repo_url: https://github.com/acme/widget\n" +
		"plain: true\n"
	require.NoError(t, os.WriteFile(env.configPath, []byte(cfg), 0o644))

	return env
}

// writeFile writes content under the workspace and returns its path.
func (e *testEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes an isolated command built around runE with the given flag
// registrations, returning stdout, stderr and the error.
func (e *testEnv) run(t *testing.T, runE func(*cobra.Command, []string) error, register func(*cobra.Command), args ...string) (string, string, error) {
	t.Helper()

	cmd := &cobra.Command{
		Use:           "test",
		RunE:          runE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().String("config", "", "")
	if register != nil {
		register(cmd)
	}

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
