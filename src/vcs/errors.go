package vcs

import "errors"

var (
	// ErrNotARepository reports that the configured root is not a git
	// worktree at all.
	ErrNotARepository = errors.New("not a git repository")

	// ErrNoRemote reports a repository with no remote to pull from or push
	// to. Callers treat it as "local-only repository", not a failure.
	ErrNoRemote = errors.New("repository has no remote")

	// ErrEmptyCommit reports a commit attempt with nothing staged. After a
	// copy that changed no bytes this is the expected outcome.
	ErrEmptyCommit = errors.New("nothing to commit")
)
