// Package cli tests root command, command registration and exit codes.
// Related: internal/cli/root.go, internal/cli/exit_codes.go
// Tags: cli, root, commands, exit-codes

package cli

import (
	"errors"
	"fmt"
	"testing"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "relnotes", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName  string
		shorthand string
	}{
		"config flag exists": {flagName: "config", shorthand: "c"},
		"debug flag exists":  {flagName: "debug"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func findCommand(parent *cobra.Command, name string) *cobra.Command {
	for _, cmd := range parent.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		group string
	}{
		"validate":  {group: GroupReleaseNotes},
		"format":    {group: GroupReleaseNotes},
		"preview":   {group: GroupReleaseNotes},
		"watch":     {group: GroupReleaseNotes},
		"changelog": {group: GroupChangelog},
		"config":    {group: GroupInternal},
		"version":   {group: GroupInternal},
	}

	for name, tt := range tests {
		name, tt := name, tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd := findCommand(rootCmd, name)
			require.NotNil(t, cmd, "%s command should be registered", name)
			assert.Equal(t, tt.group, cmd.GroupID)
			assert.NotEmpty(t, cmd.Short)
			assert.True(t, cmd.RunE != nil || cmd.HasSubCommands())
		})
	}
}

func TestChangelogCmd_Subcommands(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"append", "render", "check", "release", "show"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd := findCommand(changelogCmd, name)
			require.NotNil(t, cmd, "changelog %s should be registered", name)
			assert.NotNil(t, cmd.RunE)
			assert.NotEmpty(t, cmd.Example)
		})
	}
}

func TestPullRequestFlags(t *testing.T) {
	t.Parallel()

	for _, cmd := range []*cobra.Command{formatCmd, changelogAppendCmd} {
		for _, flag := range []string{"event", "pr", "pr-url", "author", "author-url"} {
			assert.NotNil(t, cmd.Flags().Lookup(flag), "%s should have --%s", cmd.Name(), flag)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":                {err: nil, want: ExitSuccess},
		"explicit":           {err: NewExitError(ExitInvalidArguments), want: ExitInvalidArguments},
		"wrapped explicit":   {err: fmt.Errorf("outer: %w", WithExitCode(ExitMissingDependencies, errors.New("x"))), want: ExitMissingDependencies},
		"argument error":     {err: clierrors.NewArgumentError("bad"), want: ExitInvalidArguments},
		"config error":       {err: clierrors.NewConfigError("bad"), want: ExitInvalidArguments},
		"prerequisite error": {err: clierrors.MissingPRBody(), want: ExitMissingDependencies},
		"validation error":   {err: clierrors.NewValidationError("bad"), want: ExitValidationFailed},
		"plain error":        {err: errors.New("boom"), want: ExitValidationFailed},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitError_Message(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "exit status 3", NewExitError(3).Error())

	cause := errors.New("cause")
	err := WithExitCode(1, cause)
	assert.Equal(t, "cause", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, WithExitCode(1, nil))
}
