package directory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savesync/src/backend/directory"
)

func seed(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for p, content := range files {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestEntryPath(t *testing.T) {
	l := directory.NewLayout("/srv/repo/saves")
	assert.Equal(t, filepath.Join("/srv/repo/saves", "GameX", "GameX"), l.EntryPath("GameX", "GameX"))
}

func TestListMissingRootIsEmpty(t *testing.T) {
	l := directory.NewLayout(filepath.Join(t.TempDir(), "saves"))
	entries, err := l.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListFindsBackupsSorted(t *testing.T) {
	root := t.TempDir()
	seed(t, root, map[string]string{
		"GameZ/Saves/slot1.sav":      "zz",
		"GameA/GameA/save.dat":       "aaaa",
		"GameA/GameA/nested/bak.dat": "bb",
	})

	entries, err := directory.NewLayout(root).List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "GameA", entries[0].Name)
	assert.Equal(t, "GameA", entries[0].Leaf)
	assert.Equal(t, 2, entries[0].Files)
	assert.Equal(t, int64(6), entries[0].Size)
	assert.Equal(t, filepath.Join(root, "GameA", "GameA"), entries[0].Path)

	assert.Equal(t, "GameZ", entries[1].Name)
	assert.Equal(t, "Saves", entries[1].Leaf)
	assert.Equal(t, 1, entries[1].Files)
	assert.Equal(t, int64(2), entries[1].Size)
}

func TestListSkipsHiddenAndPlainFiles(t *testing.T) {
	root := t.TempDir()
	seed(t, root, map[string]string{
		"GameA/GameA/save.dat": "a",
		".git/config":          "x",
		"README.md":            "docs",
		"GameA/.marker/m":      "x",
	})

	entries, err := directory.NewLayout(root).List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "GameA", entries[0].Name)
}
