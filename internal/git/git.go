// Package git resolves repository metadata for relnotes. It uses the go-git
// library so the tool works in CI images that lack the git CLI.
package git

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
)

// DefaultRemote is the remote consulted when none is named.
const DefaultRemote = "origin"

// ErrNoRemoteURL is returned when the remote exists but has no URL configured.
var ErrNoRemoteURL = errors.New("remote has no URL")

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It walks up the directory tree to find the repository root.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return repo, nil
}

// RemoteURL returns the first configured URL of the named remote for the
// repository containing path. Empty path means the working directory and
// empty name means DefaultRemote.
func RemoteURL(path, name string) (string, error) {
	if name == "" {
		name = DefaultRemote
	}

	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("looking up remote %q: %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 || strings.TrimSpace(urls[0]) == "" {
		return "", fmt.Errorf("remote %q: %w", name, ErrNoRemoteURL)
	}

	logDebug("[git] RemoteURL(%s): %s", name, urls[0])
	return urls[0], nil
}

// RepositoryWebURL resolves the browsable https URL of the repository at
// path from its origin remote.
func RepositoryWebURL(path string) (string, error) {
	remote, err := RemoteURL(path, DefaultRemote)
	if err != nil {
		return "", err
	}
	return WebURL(remote)
}

// WebURL converts a clone URL to the repository's https web URL.
// Supported forms:
//   - https://host/owner/repo(.git)
//   - ssh://git@host(:port)/owner/repo(.git)
//   - git@host:owner/repo(.git)
//
// Credentials and ports are dropped.
func WebURL(remote string) (string, error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return "", ErrNoRemoteURL
	}

	var host, path string
	if strings.Contains(remote, "://") {
		u, err := url.Parse(remote)
		if err != nil {
			return "", fmt.Errorf("parsing remote URL %q: %w", remote, err)
		}
		host, path = u.Hostname(), u.Path
	} else {
		// scp-like syntax: [user@]host:path
		hostPart, pathPart, ok := strings.Cut(remote, ":")
		if !ok {
			return "", fmt.Errorf("unrecognized remote URL %q", remote)
		}
		if _, h, found := strings.Cut(hostPart, "@"); found {
			hostPart = h
		}
		host, path = hostPart, pathPart
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	if host == "" || path == "" {
		return "", fmt.Errorf("unrecognized remote URL %q", remote)
	}

	return "https://" + host + "/" + path, nil
}
