package vcs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

const defaultRemote = "origin"

// GitRepo drives a real git worktree through go-git. No git binary is
// involved; file, SSH, and HTTP remotes all go through go-git transports.
type GitRepo struct {
	repo *git.Repository
	wt   *git.Worktree
	log  *slog.Logger

	authorName  string
	authorEmail string
}

// Options configure Open.
type Options struct {
	// AuthorName and AuthorEmail sign commits. The defaults keep commits
	// working on machines with no global git identity.
	AuthorName  string
	AuthorEmail string
	Logger      *slog.Logger
}

// Open opens the git repository whose worktree root is dir.
func Open(dir string, opts Options) (*GitRepo, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotARepository, dir)
		}
		return nil, fmt.Errorf("open repository %s: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree %s: %w", dir, err)
	}
	if opts.AuthorName == "" {
		opts.AuthorName = "savesync"
	}
	if opts.AuthorEmail == "" {
		opts.AuthorEmail = "savesync@localhost"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &GitRepo{
		repo:        repo,
		wt:          wt,
		log:         opts.Logger,
		authorName:  opts.AuthorName,
		authorEmail: opts.AuthorEmail,
	}, nil
}

// Root returns the absolute path of the worktree root.
func (g *GitRepo) Root() string {
	return g.wt.Filesystem.Root()
}

// Pull fast-forwards the worktree from origin. An empty remote and an
// already up-to-date tree both count as success.
func (g *GitRepo) Pull(ctx context.Context) error {
	g.log.Debug("pulling", "remote", defaultRemote)
	err := g.wt.PullContext(ctx, &git.PullOptions{RemoteName: defaultRemote})
	switch {
	case err == nil, errors.Is(err, git.NoErrAlreadyUpToDate):
		return nil
	case errors.Is(err, git.ErrRemoteNotFound):
		return ErrNoRemote
	case errors.Is(err, transport.ErrEmptyRemoteRepository):
		return nil
	default:
		return fmt.Errorf("pull: %w", err)
	}
}

// Status reports worktree cleanliness with a porcelain-style summary.
func (g *GitRepo) Status() (WorktreeStatus, error) {
	st, err := g.wt.Status()
	if err != nil {
		return WorktreeStatus{}, fmt.Errorf("status: %w", err)
	}
	if st.IsClean() {
		return WorktreeStatus{Clean: true}, nil
	}
	return WorktreeStatus{Summary: strings.TrimRight(st.String(), "\n")}, nil
}

// Stage adds path to the index.
func (g *GitRepo) Stage(path string) error {
	if _, err := g.wt.Add(path); err != nil {
		return fmt.Errorf("stage %s: %w", path, err)
	}
	return nil
}

// Commit records staged changes under the identity configured at Open.
func (g *GitRepo) Commit(message string) error {
	sig := &object.Signature{Name: g.authorName, Email: g.authorEmail, When: time.Now()}
	_, err := g.wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, git.ErrEmptyCommit):
		return ErrEmptyCommit
	default:
		return fmt.Errorf("commit: %w", err)
	}
}

// Push publishes committed history to origin.
func (g *GitRepo) Push(ctx context.Context) error {
	g.log.Debug("pushing", "remote", defaultRemote)
	err := g.repo.PushContext(ctx, &git.PushOptions{RemoteName: defaultRemote})
	switch {
	case err == nil, errors.Is(err, git.NoErrAlreadyUpToDate):
		return nil
	case errors.Is(err, git.ErrRemoteNotFound):
		return ErrNoRemote
	default:
		return fmt.Errorf("push: %w", err)
	}
}
