// Package vcs wraps the version-control operations the reconciliation flow
// needs: pull, status, stage, commit, push. The real implementation drives
// a git repository in process through go-git; tests substitute FakeRepo.
package vcs

import "context"

// WorktreeStatus answers "is the working tree clean?". Summary carries a
// porcelain-style listing when it is not.
type WorktreeStatus struct {
	Clean   bool
	Summary string
}

// Repo is the version-control collaborator. Pull and Push take a context
// because they may hit the network; the rest operate on the local worktree.
type Repo interface {
	// Pull integrates remote changes into the worktree. ErrNoRemote when no
	// remote is configured; nil when already up to date.
	Pull(ctx context.Context) error
	// Status reports whether the worktree has uncommitted changes.
	Status() (WorktreeStatus, error)
	// Stage adds the file or directory at path (slash-separated, relative
	// to the worktree root) to the index, including deletions beneath it.
	Stage(path string) error
	// Commit records staged changes. ErrEmptyCommit when nothing is staged.
	Commit(message string) error
	// Push publishes local commits. ErrNoRemote when none is configured.
	Push(ctx context.Context) error
}
