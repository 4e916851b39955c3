// Package directory reads and addresses the backup tree kept inside the
// repository: one <saves_root>/<game name>/<leaf folder> subtree per entry.
package directory

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one discovered backup: a named game directory holding the
// mirrored leaf folder.
type Entry struct {
	Name  string `json:"name"`
	Leaf  string `json:"leaf"`
	Path  string `json:"path"`
	Files int    `json:"files"`
	Size  int64  `json:"size"`
}

// Layout addresses backups inside the saves root. The root does not have to
// exist yet; sync creates it on first use.
type Layout struct {
	root string
}

// NewLayout returns a Layout rooted at root.
func NewLayout(root string) Layout {
	return Layout{root: filepath.Clean(root)}
}

// Root returns the saves root path.
func (l Layout) Root() string { return l.root }

// EntryPath returns the backup target for a named entry's leaf folder.
func (l Layout) EntryPath(name, leaf string) string {
	return filepath.Join(l.root, name, leaf)
}

// List walks the two-level saves tree and returns every backup found,
// sorted by name then leaf. A missing root yields an empty list.
func (l Layout) List() ([]Entry, error) {
	names, err := readDirNames(l.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	for _, name := range names {
		leaves, err := readDirNames(filepath.Join(l.root, name))
		if err != nil {
			return nil, err
		}
		for _, leaf := range leaves {
			full := filepath.Join(l.root, name, leaf)
			files, size, err := tally(full)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Name: name, Leaf: leaf, Path: full, Files: files, Size: size})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Leaf < entries[j].Leaf
	})
	return entries, nil
}

// readDirNames lists subdirectory names, skipping hidden entries and plain
// files so stray markers don't surface as backups.
func readDirNames(path string) ([]string, error) {
	des, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(des))
	for _, de := range des {
		if !de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		names = append(names, de.Name())
	}
	return names, nil
}

// tally counts regular files and their total size under root.
func tally(root string) (files int, size int64, err error) {
	err = filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files++
		size += info.Size()
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, size, nil
}
