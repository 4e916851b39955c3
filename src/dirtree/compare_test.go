package dirtree_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savesync/src/dirtree"
)

// writeTree materializes a tree under a fresh temp dir. Keys are
// slash-separated relative paths; a trailing slash creates an empty
// directory, anything else a file with the value as content.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for p, content := range files {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

var gameTree = map[string]string{
	"save.dat":           "slot one",
	"profiles/alice.cfg": "volume=7",
	"profiles/bob.cfg":   "volume=3",
	"screenshots/":       "",
}

func TestEqualPathsReflexive(t *testing.T) {
	a := writeTree(t, gameTree)
	assert.True(t, dirtree.EqualPaths(a, a))
}

func TestEqualPathsSymmetric(t *testing.T) {
	a := writeTree(t, gameTree)
	b := writeTree(t, gameTree)
	c := writeTree(t, map[string]string{"save.dat": "slot two"})

	assert.True(t, dirtree.EqualPaths(a, b))
	assert.True(t, dirtree.EqualPaths(b, a))
	assert.Equal(t, dirtree.EqualPaths(a, c), dirtree.EqualPaths(c, a))
	assert.False(t, dirtree.EqualPaths(a, c))
}

func TestEqualPathsEmptyDirs(t *testing.T) {
	assert.True(t, dirtree.EqualPaths(t.TempDir(), t.TempDir()))
}

func TestEqualPathsNonexistent(t *testing.T) {
	a := writeTree(t, gameTree)
	missing := filepath.Join(t.TempDir(), "nope")

	assert.False(t, dirtree.EqualPaths(a, missing))
	assert.False(t, dirtree.EqualPaths(missing, a))
	assert.False(t, dirtree.EqualPaths(missing, missing))
}

func TestEqualPathsRejectsPlainFiles(t *testing.T) {
	a := writeTree(t, gameTree)
	assert.False(t, dirtree.EqualPaths(filepath.Join(a, "save.dat"), a))
	assert.False(t, dirtree.EqualPaths(a, filepath.Join(a, "save.dat")))
}

func TestUnequalOnAddedFile(t *testing.T) {
	a := writeTree(t, gameTree)
	b := writeTree(t, gameTree)
	require.NoError(t, os.WriteFile(filepath.Join(b, "extra.tmp"), []byte("x"), 0o644))

	assert.False(t, dirtree.EqualPaths(a, b))
	assert.False(t, dirtree.EqualPaths(b, a))
}

func TestUnequalOnRemovedFile(t *testing.T) {
	a := writeTree(t, gameTree)
	b := writeTree(t, gameTree)
	require.NoError(t, os.Remove(filepath.Join(b, "profiles", "bob.cfg")))

	assert.False(t, dirtree.EqualPaths(a, b))
}

func TestUnequalOnModifiedContent(t *testing.T) {
	a := writeTree(t, gameTree)
	b := writeTree(t, gameTree)
	require.NoError(t, os.WriteFile(filepath.Join(b, "profiles", "alice.cfg"), []byte("volume=9"), 0o644))

	assert.False(t, dirtree.EqualPaths(a, b))
}

func TestUnequalOnSameSizeDifferentBytes(t *testing.T) {
	a := writeTree(t, map[string]string{"save.dat": "aaa"})
	b := writeTree(t, map[string]string{"save.dat": "aab"})

	assert.False(t, dirtree.EqualPaths(a, b))
}

func TestUnequalOnTypeMismatch(t *testing.T) {
	a := writeTree(t, map[string]string{"slot": "data"})
	b := writeTree(t, map[string]string{"slot/": ""})

	assert.False(t, dirtree.EqualPaths(a, b))
	assert.False(t, dirtree.EqualPaths(b, a))
}

func TestUnequalOnNestedDifference(t *testing.T) {
	a := writeTree(t, gameTree)
	b := writeTree(t, gameTree)
	require.NoError(t, os.WriteFile(filepath.Join(b, "screenshots", "001.png"), []byte("png"), 0o644))

	assert.False(t, dirtree.EqualPaths(a, b))
}

func TestTimestampsDoNotAffectEquality(t *testing.T) {
	a := writeTree(t, gameTree)
	b := writeTree(t, gameTree)
	epoch := time.Unix(0, 0)
	require.NoError(t, os.Chtimes(filepath.Join(b, "save.dat"), epoch, epoch))

	assert.True(t, dirtree.EqualPaths(a, b))
}

func TestSymlinkTargetsCompared(t *testing.T) {
	a := writeTree(t, gameTree)
	b := writeTree(t, gameTree)
	require.NoError(t, os.Symlink("save.dat", filepath.Join(a, "latest")))
	require.NoError(t, os.Symlink("save.dat", filepath.Join(b, "latest")))
	assert.True(t, dirtree.EqualPaths(a, b))

	require.NoError(t, os.Remove(filepath.Join(b, "latest")))
	require.NoError(t, os.Symlink("profiles", filepath.Join(b, "latest")))
	assert.False(t, dirtree.EqualPaths(a, b))
}

func TestSymlinkVersusFileUnequal(t *testing.T) {
	a := writeTree(t, map[string]string{"save.dat": "x", "latest": "x"})
	b := writeTree(t, map[string]string{"save.dat": "x"})
	require.NoError(t, os.Symlink("save.dat", filepath.Join(b, "latest")))

	assert.False(t, dirtree.EqualPaths(a, b))
	assert.False(t, dirtree.EqualPaths(b, a))
}

func TestUnreadableTreeIsUnequal(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("running as root; permissions are not enforced")
	}
	a := writeTree(t, gameTree)
	b := writeTree(t, gameTree)
	locked := filepath.Join(b, "profiles")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	assert.False(t, dirtree.EqualPaths(a, b))
}

func TestEqualOverMemoryFilesystems(t *testing.T) {
	a, b := memfs.New(), memfs.New()
	for _, fs := range []interface {
		MkdirAll(string, os.FileMode) error
	}{a, b} {
		require.NoError(t, fs.MkdirAll("profiles", 0o755))
	}
	require.NoError(t, util.WriteFile(a, "save.dat", []byte("slot one"), 0o644))
	require.NoError(t, util.WriteFile(b, "save.dat", []byte("slot one"), 0o644))
	require.NoError(t, util.WriteFile(a, "profiles/alice.cfg", []byte("volume=7"), 0o644))
	require.NoError(t, util.WriteFile(b, "profiles/alice.cfg", []byte("volume=7"), 0o644))

	assert.True(t, dirtree.Equal(a, b))

	require.NoError(t, util.WriteFile(b, "profiles/alice.cfg", []byte("volume=8"), 0o644))
	assert.False(t, dirtree.Equal(a, b))
}
