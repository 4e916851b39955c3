package vcs

import (
	"context"
	"strings"
)

// FakeRepo is an in-memory Repo for tests. It records every call and
// answers from its configurable fields.
type FakeRepo struct {
	PullErr   error
	StatusVal WorktreeStatus
	StatusErr error
	StageErr  error
	CommitErr error
	PushErr   error

	PullCalls   int
	StatusCalls int
	Staged      []string
	Commits     []string
	PushCalls   int

	// Calls lists operations in order, e.g. "pull", "stage saves/GameX".
	Calls []string
}

var _ Repo = (*FakeRepo)(nil)

// NewFakeRepo returns a fake with a clean worktree and every operation
// succeeding.
func NewFakeRepo() *FakeRepo {
	return &FakeRepo{StatusVal: WorktreeStatus{Clean: true}}
}

func (f *FakeRepo) Pull(context.Context) error {
	f.PullCalls++
	f.Calls = append(f.Calls, "pull")
	return f.PullErr
}

func (f *FakeRepo) Status() (WorktreeStatus, error) {
	f.StatusCalls++
	f.Calls = append(f.Calls, "status")
	if f.StatusErr != nil {
		return WorktreeStatus{}, f.StatusErr
	}
	return f.StatusVal, nil
}

func (f *FakeRepo) Stage(path string) error {
	f.Calls = append(f.Calls, "stage "+path)
	if f.StageErr != nil {
		return f.StageErr
	}
	f.Staged = append(f.Staged, path)
	return nil
}

func (f *FakeRepo) Commit(message string) error {
	f.Calls = append(f.Calls, "commit")
	if f.CommitErr != nil {
		return f.CommitErr
	}
	f.Commits = append(f.Commits, message)
	return nil
}

func (f *FakeRepo) Push(context.Context) error {
	f.PushCalls++
	f.Calls = append(f.Calls, "push")
	return f.PushErr
}

// WriteOps counts stage, commit, and push calls; precondition tests assert
// it stays zero.
func (f *FakeRepo) WriteOps() int {
	n := 0
	for _, c := range f.Calls {
		if c == "commit" || c == "push" || strings.HasPrefix(c, "stage ") {
			n++
		}
	}
	return n
}
