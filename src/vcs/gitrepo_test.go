package vcs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savesync/src/vcs"
)

// initRepo creates a fresh non-bare repository and opens it as a GitRepo.
func initRepo(t *testing.T) (string, *vcs.GitRepo) {
	t.Helper()
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	repo, err := vcs.Open(dir, vcs.Options{AuthorName: "tester", AuthorEmail: "tester@example.com"})
	require.NoError(t, err)
	return dir, repo
}

// commitFile writes, stages, and commits one file through the GitRepo.
func commitFile(t *testing.T, dir string, repo *vcs.GitRepo, name, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	require.NoError(t, repo.Stage(name))
	require.NoError(t, repo.Commit("add "+name))
}

// addRemote points origin at a fresh bare repository and returns its path.
func addRemote(t *testing.T, dir string) string {
	t.Helper()
	bare := t.TempDir()
	_, err := git.PlainInit(bare, true)
	require.NoError(t, err)
	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitcfg.RemoteConfig{Name: "origin", URLs: []string{bare}})
	require.NoError(t, err)
	return bare
}

func TestOpenRejectsNonRepository(t *testing.T) {
	_, err := vcs.Open(t.TempDir(), vcs.Options{})
	assert.ErrorIs(t, err, vcs.ErrNotARepository)
}

func TestStatusCleanThenDirty(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "saves/GameX/GameX/save.dat", "A")

	st, err := repo.Status()
	require.NoError(t, err)
	assert.True(t, st.Clean)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0o644))
	st, err = repo.Status()
	require.NoError(t, err)
	assert.False(t, st.Clean)
	assert.Contains(t, st.Summary, "stray.txt")
}

func TestStageDirectoryRecordsDeletions(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "saves/GameX/GameX/save.dat", "A")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "saves/GameX/GameX/extra.cfg"), []byte("x"), 0o644))
	require.NoError(t, repo.Stage("saves/GameX/GameX"))
	require.NoError(t, repo.Commit("record extra"))

	require.NoError(t, os.Remove(filepath.Join(dir, "saves/GameX/GameX/extra.cfg")))
	require.NoError(t, repo.Stage("saves/GameX/GameX"))
	require.NoError(t, repo.Commit("drop extra"))

	st, err := repo.Status()
	require.NoError(t, err)
	assert.True(t, st.Clean)
}

func TestCommitNothingStaged(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "save.dat", "A")

	err := repo.Commit("no changes")
	assert.ErrorIs(t, err, vcs.ErrEmptyCommit)
}

func TestPullWithoutRemote(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "save.dat", "A")

	assert.ErrorIs(t, repo.Pull(context.Background()), vcs.ErrNoRemote)
}

func TestPushWithoutRemote(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "save.dat", "A")

	assert.ErrorIs(t, repo.Push(context.Background()), vcs.ErrNoRemote)
}

func TestPullFromEmptyRemoteSucceeds(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "save.dat", "A")
	addRemote(t, dir)

	assert.NoError(t, repo.Pull(context.Background()))
}

func TestPushThenPullRoundTrip(t *testing.T) {
	ctx := context.Background()

	dirA, repoA := initRepo(t)
	commitFile(t, dirA, repoA, "saves/GameX/GameX/save.dat", "A")
	bare := addRemote(t, dirA)
	require.NoError(t, repoA.Push(ctx))

	dirB := t.TempDir()
	_, err := git.PlainClone(dirB, false, &git.CloneOptions{URL: bare})
	require.NoError(t, err)
	repoB, err := vcs.Open(dirB, vcs.Options{})
	require.NoError(t, err)

	commitFile(t, dirA, repoA, "saves/GameX/GameX/save.dat", "A2")
	require.NoError(t, repoA.Push(ctx))

	require.NoError(t, repoB.Pull(ctx))
	got, err := os.ReadFile(filepath.Join(dirB, "saves/GameX/GameX/save.dat"))
	require.NoError(t, err)
	assert.Equal(t, "A2", string(got))

	// A second pull with nothing new is success, not an error.
	assert.NoError(t, repoB.Pull(ctx))
}

func TestPushTwiceIsUpToDate(t *testing.T) {
	ctx := context.Background()
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "save.dat", "A")
	addRemote(t, dir)

	require.NoError(t, repo.Push(ctx))
	assert.NoError(t, repo.Push(ctx))
}

func TestCommitUsesConfiguredIdentity(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, dir, repo, "save.dat", "A")

	raw, err := git.PlainOpen(dir)
	require.NoError(t, err)
	head, err := raw.Head()
	require.NoError(t, err)
	commit, err := raw.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "tester", commit.Author.Name)
	assert.Equal(t, "tester@example.com", commit.Author.Email)
	assert.Equal(t, "add save.dat", commit.Message)
}
