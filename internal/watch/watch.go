// Package watch reports changes to a single file using fsnotify.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events a single editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// ErrWatcherClosed is returned by Run when the watcher is closed underneath it.
var ErrWatcherClosed = errors.New("watcher closed")

var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for file watching.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// FileWatcher calls back whenever a file is written, created or replaced.
// The parent directory is watched rather than the file itself, so editors
// that save through a temporary file and rename are still observed.
type FileWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	mu       sync.Mutex
	closed   bool
}

// New creates a FileWatcher for path. The parent directory must exist.
func New(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching parent directory: %w", err)
	}

	return &FileWatcher{
		path:     abs,
		watcher:  watcher,
		debounce: DefaultDebounce,
	}, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// SetDebounce changes the quiet period after the last event before
// onChange is invoked.
func (w *FileWatcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks until ctx is cancelled, invoking onChange after each settled
// change to the file. An error from onChange stops the loop and is returned.
// Changes that leave the file missing are ignored until it reappears.
func (w *FileWatcher) Run(ctx context.Context, onChange func() error) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return ErrWatcherClosed
			}
			if !w.relevant(event) {
				continue
			}
			logDebug("[watch] %s", event)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if _, err := os.Stat(w.path); err != nil {
				logDebug("[watch] %s not present after change: %v", w.path, err)
				continue
			}
			if err := onChange(); err != nil {
				return err
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// relevant reports whether event may have changed the watched file.
func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Close stops watching. It is safe to call more than once.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}
