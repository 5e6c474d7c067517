package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string, onChange func() error) (context.CancelFunc, <-chan error) {
	t.Helper()

	w, err := New(path)
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)
	t.Cleanup(func() { w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, onChange) }()

	return cancel, done
}

func TestFileWatcher_Write(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pr-body.md")
	require.NoError(t, os.WriteFile(path, []byte("draft"), 0o644))

	changed := make(chan struct{}, 10)
	cancel, done := startWatcher(t, path, func() error {
		changed <- struct{}{}
		return nil
	})
	defer cancel()

	require.NoError(t, os.WriteFile(path, []byte("## Release Notes\nNONE"), 0o644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestFileWatcher_IgnoresSiblings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "pr-body.md")
	require.NoError(t, os.WriteFile(path, []byte("draft"), 0o644))

	changed := make(chan struct{}, 10)
	cancel, _ := startWatcher(t, path, func() error {
		changed <- struct{}{}
		return nil
	})
	defer cancel()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o644))

	select {
	case <-changed:
		t.Fatal("sibling change reported")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestFileWatcher_CallbackErrorStops(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pr-body.md")
	require.NoError(t, os.WriteFile(path, []byte("draft"), 0o644))

	stop := errors.New("stop")
	cancel, done := startWatcher(t, path, func() error { return stop })
	defer cancel()

	require.NoError(t, os.WriteFile(path, []byte("edit"), 0o644))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, stop)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := New(filepath.Join(t.TempDir(), "missing", "pr-body.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching parent directory")
}

func TestFileWatcher_CloseIdempotent(t *testing.T) {
	t.Parallel()

	w, err := New(filepath.Join(t.TempDir(), "pr-body.md"))
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
