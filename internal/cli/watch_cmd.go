package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/ariel-frischer/relnotes/internal/ci"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/ariel-frischer/relnotes/internal/releasenotes"
	"github.com/ariel-frischer/relnotes/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-validate a PR description draft on every save",
	Long: `Validate a local PR description draft, then validate it again each time
the file is saved. Runs until interrupted (Ctrl+C).`,
	Example: `  relnotes watch pr-body.md`,
	Args:    cobra.ExactArgs(1),
	RunE:    runWatch,
}

func init() {
	watchCmd.GroupID = GroupReleaseNotes
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	if _, err := readSource(path, nil); err != nil {
		return err
	}

	w, err := watch.New(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	defer w.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	check := func() error {
		checkFile(out, errOut, path, cfg.Plain)
		return nil
	}

	_ = check()
	output.PrintInfo(out, fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", path))

	if err := w.Run(ctx, check); err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// checkFile validates path and prints a timestamped result. Read errors
// are reported and watching continues.
func checkFile(out, errOut io.Writer, path string, plain bool) {
	body, err := readSource(path, nil)
	if err != nil {
		fmt.Fprintf(errOut, "[%s] %v\n", time.Now().Format("15:04:05"), err)
		return
	}

	fmt.Fprintf(out, "[%s] ", time.Now().Format("15:04:05"))
	result := releasenotes.Validate(body)
	reportResults(out, errOut, ci.NewReporter(io.Discard), []namedResult{{Name: path, Result: result}}, plain)
}
