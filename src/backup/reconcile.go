package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"savesync/src/config"
	"savesync/src/dirtree"
	"savesync/src/platform"
	"savesync/src/vcs"
)

type direction int

const (
	directionSync direction = iota
	directionApply
)

func (d direction) String() string {
	if d == directionApply {
		return "apply"
	}
	return "sync"
}

// request is one copy the reconciliation loop wants to make: the tree at
// source replaces the tree at dest, then postCopy (if any) records it.
type request struct {
	source        string
	dest          string
	missingSource string
	successDetail string
	postCopy      func(ctx context.Context) error
}

// Sync copies local save folders into the backup repository and records
// every replacement as a commit, pushed when a remote is configured.
func (e *Engine) Sync(ctx context.Context) (*Report, error) {
	return e.run(ctx, directionSync)
}

// Apply mirrors backed-up saves onto the local machine. Version control is
// read during the precondition check but never written.
func (e *Engine) Apply(ctx context.Context) (*Report, error) {
	return e.run(ctx, directionApply)
}

func (e *Engine) run(ctx context.Context, dir direction) (*Report, error) {
	unlock, err := acquireLock(e.opts.LockPath)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := e.ensureCleanWorktree(ctx); err != nil {
		return nil, err
	}

	report := &Report{}
	for _, entry := range e.opts.Entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		e.reconcileEntry(ctx, dir, entry, report)
	}

	fmt.Fprintf(e.opts.Out, "%s complete: %s\n", dir, report.summary())
	return report, nil
}

// ensureCleanWorktree pulls the latest backups and verifies nothing is
// uncommitted. Both checks run before any save folder is touched, so an
// aborted run leaves zero mutations behind. Dry runs skip the pull, which
// would itself move the worktree.
func (e *Engine) ensureCleanWorktree(ctx context.Context) error {
	switch {
	case e.opts.DryRun:
		e.log.Debug("dry run, skipping pull")
	default:
		err := e.opts.Repo.Pull(ctx)
		switch {
		case err == nil:
		case errors.Is(err, vcs.ErrNoRemote):
			e.log.Info("no remote configured, skipping pull")
		default:
			return fmt.Errorf("pulling latest backups: %w", err)
		}
	}

	st, err := e.opts.Repo.Status()
	if err != nil {
		return fmt.Errorf("checking worktree: %w", err)
	}
	if !st.Clean {
		return fmt.Errorf("backup repository has uncommitted changes, commit or discard them first:\n%s", st.Summary)
	}
	return nil
}

func (e *Engine) reconcileEntry(ctx context.Context, dir direction, entry config.SaveEntry, report *Report) {
	name := entry.Name
	if name == "" {
		name = "(unnamed)"
	}
	if !e.opts.Select.Match(entry.Name) {
		return
	}
	if entry.Name == "" || entry.SaveDir == "" {
		e.record(report, name, StatusSkipped, "entry is missing Name or SaveDir")
		return
	}

	loc, err := platform.ResolveSaveDir(e.opts.Folders, entry.SaveDir)
	if err != nil {
		e.record(report, name, StatusSkipped, fmt.Sprintf("cannot resolve save folder: %v", err))
		return
	}
	backupPath := e.opts.Layout.EntryPath(entry.Name, loc.Leaf)

	var req request
	switch dir {
	case directionSync:
		req = request{
			source:        loc.Path,
			dest:          backupPath,
			missingSource: fmt.Sprintf("save folder %s does not exist", loc.Path),
			successDetail: fmt.Sprintf("backed up to %s", e.display(backupPath)),
			postCopy: func(ctx context.Context) error {
				return e.recordBackup(ctx, entry.Name, loc.Leaf, backupPath)
			},
		}
	case directionApply:
		req = request{
			source:        backupPath,
			dest:          loc.Path,
			missingSource: fmt.Sprintf("no backup at %s", e.display(backupPath)),
			successDetail: fmt.Sprintf("restored %s", loc.Path),
		}
	}
	e.reconcile(ctx, name, req, report)
}

func (e *Engine) reconcile(ctx context.Context, name string, req request, report *Report) {
	fi, err := os.Stat(req.source)
	switch {
	case os.IsNotExist(err):
		e.record(report, name, StatusSkipped, req.missingSource)
		return
	case err != nil:
		e.record(report, name, StatusFailed, fmt.Sprintf("inspecting %s: %v", req.source, err))
		return
	case !fi.IsDir():
		e.record(report, name, StatusFailed, fmt.Sprintf("%s is not a directory", req.source))
		return
	}

	if e.opts.DryRun {
		e.planEntry(name, req, report)
		return
	}

	ok, err := e.resolveOverwrite(name, req.source, req.dest)
	if err != nil {
		e.record(report, name, StatusFailed, err.Error())
		return
	}
	if !ok {
		e.record(report, name, StatusSkipped, "overwrite declined")
		return
	}

	opts := dirtree.ReplaceOptions{Staged: e.opts.Staged, Progress: e.opts.Out}
	if err := dirtree.ReplaceContents(req.source, req.dest, opts); err != nil {
		e.record(report, name, StatusFailed, fmt.Sprintf("copying %s: %v", req.source, err))
		return
	}
	if req.postCopy != nil {
		if err := req.postCopy(ctx); err != nil {
			e.record(report, name, StatusFailed, err.Error())
			return
		}
	}
	e.record(report, name, StatusUpdated, req.successDetail)
}

// planEntry reports what a real run would do. Nothing is copied and nobody
// is prompted.
func (e *Engine) planEntry(name string, req request, report *Report) {
	switch {
	case !pathExists(req.dest):
		e.record(report, name, StatusPlanned, fmt.Sprintf("would create %s", e.display(req.dest)))
	case dirtree.EqualPaths(req.source, req.dest):
		e.record(report, name, StatusPlanned, "already in sync")
	default:
		e.record(report, name, StatusPlanned, fmt.Sprintf("would prompt to overwrite %s", e.display(req.dest)))
	}
}

// recordBackup stages the copied tree and commits it, pushing when a remote
// exists. An empty commit means the repository already held this exact
// state; that is success with nothing to publish.
func (e *Engine) recordBackup(ctx context.Context, name, leaf, backupPath string) error {
	rel, err := filepath.Rel(e.opts.RepoRoot, backupPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("backup path %s is outside repository %s", backupPath, e.opts.RepoRoot)
	}
	if err := e.opts.Repo.Stage(filepath.ToSlash(rel)); err != nil {
		return fmt.Errorf("staging %s: %w", rel, err)
	}

	message := fmt.Sprintf("Sync %s saves - %s", name, leaf)
	if err := e.opts.Repo.Commit(message); err != nil {
		if errors.Is(err, vcs.ErrEmptyCommit) {
			e.log.Debug("backup unchanged, nothing to commit", "entry", name)
			return nil
		}
		return fmt.Errorf("committing backup: %w", err)
	}

	if err := e.opts.Repo.Push(ctx); err != nil {
		if errors.Is(err, vcs.ErrNoRemote) {
			e.log.Info("no remote configured, backup kept local", "entry", name)
			return nil
		}
		return fmt.Errorf("pushing backup: %w", err)
	}
	return nil
}

func (e *Engine) record(report *Report, entry string, status Status, detail string) {
	o := Outcome{Entry: entry, Status: status, Detail: detail}
	report.Outcomes = append(report.Outcomes, o)
	fmt.Fprintln(e.opts.Out, o.String())
}

// display shortens paths inside the repository to repo-relative form for
// output; paths outside it print as-is.
func (e *Engine) display(path string) string {
	rel, err := filepath.Rel(e.opts.RepoRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
