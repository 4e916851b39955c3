// Package backup reconciles configured game-save folders with a git-backed
// backup repository. Sync copies local saves into the repository and records
// each change as a commit; Apply mirrors the repository back onto the local
// machine without writing version-control state.
//
// Runs are single-threaded on purpose. Entries are processed in config
// order, and a problem with one entry never stops the rest: fatal errors are
// reserved for preconditions (unclean worktree, failed pull, held lock).
package backup

import (
	"errors"
	"io"
	"log/slog"

	"savesync/src/backend/directory"
	"savesync/src/config"
	"savesync/src/platform"
	"savesync/src/target"
	"savesync/src/vcs"
)

// ConfirmFunc answers whether the tree at source may replace the tree at
// dest for the named save. It is called once per conflicting entry, never
// during dry runs.
type ConfirmFunc func(name, source, dest string) (bool, error)

// Options carries the collaborators and switches for an Engine. Repo,
// Folders, and RepoRoot are required; everything else has a usable default.
type Options struct {
	// Entries are the configured saves, reconciled in order.
	Entries []config.SaveEntry
	// Layout maps entry names to their place in the backup repository.
	Layout directory.Layout
	// RepoRoot is the backup repository worktree root.
	RepoRoot string
	// Folders resolves %FOLDERID% placeholders in save paths.
	Folders platform.Resolver
	// Repo is the version-control collaborator for sync runs.
	Repo vcs.Repo
	// Confirm resolves overwrite conflicts. Nil declines everything.
	Confirm ConfirmFunc
	// Select limits the run to matching entry names. Nil selects all.
	Select *target.Selector
	// Out receives per-entry progress lines. Nil discards them.
	Out io.Writer
	// Logger receives diagnostics. Nil uses slog.Default.
	Logger *slog.Logger

	// DryRun reports what would happen without copying, prompting, or
	// touching version control.
	DryRun bool
	// Staged builds each replacement next to its destination and swaps it
	// in with a rename instead of clearing the destination in place.
	Staged bool
	// LockPath overrides where the run lock is taken. Empty derives it
	// from RepoRoot.
	LockPath string
}

// Engine runs Sync and Apply over a fixed set of options.
type Engine struct {
	opts Options
	log  *slog.Logger
}

// New validates opts and returns a ready Engine.
func New(opts Options) (*Engine, error) {
	if opts.Repo == nil {
		return nil, errors.New("backup: Repo is required")
	}
	if opts.Folders == nil {
		return nil, errors.New("backup: Folders is required")
	}
	if opts.RepoRoot == "" {
		return nil, errors.New("backup: RepoRoot is required")
	}
	if opts.Confirm == nil {
		opts.Confirm = func(string, string, string) (bool, error) { return false, nil }
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.LockPath == "" {
		opts.LockPath = defaultLockPath(opts.RepoRoot)
	}
	return &Engine{opts: opts, log: opts.Logger}, nil
}
