// Package dirtree compares and copies directory trees.
//
// Comparison is structural and content-exact: two trees are equal when they
// hold the same entry names with the same types at every depth, regular
// files match byte for byte, and symlinks point at the same target.
// Timestamps, ownership, and modes never factor in.
package dirtree

import (
	"bytes"
	"io"
	"os"
	"path"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

const compareChunk = 64 * 1024

// EqualPaths reports whether the directory trees rooted at a and b are
// identical in structure and content. Any stat, read, or traversal failure
// makes the answer false: callers asking "are these the same?" about a
// missing or unreadable tree get "no", never an error.
func EqualPaths(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil || !ia.IsDir() {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil || !ib.IsDir() {
		return false
	}
	return Equal(osfs.New(a), osfs.New(b))
}

// Equal is EqualPaths over billy filesystems, each chrooted at its tree
// root.
func Equal(a, b billy.Filesystem) bool {
	return equalDirs(a, b, ".")
}

func equalDirs(a, b billy.Filesystem, dir string) bool {
	entriesA, err := a.ReadDir(dir)
	if err != nil {
		return false
	}
	entriesB, err := b.ReadDir(dir)
	if err != nil {
		return false
	}

	infoA := make(map[string]os.FileInfo, len(entriesA))
	namesA := mapset.NewThreadUnsafeSet[string]()
	for _, e := range entriesA {
		infoA[e.Name()] = e
		namesA.Add(e.Name())
	}
	namesB := mapset.NewThreadUnsafeSet[string]()
	for _, e := range entriesB {
		namesB.Add(e.Name())
	}
	if !namesA.Equal(namesB) {
		return false
	}

	for _, eb := range entriesB {
		ea := infoA[eb.Name()]
		p := path.Join(dir, eb.Name())
		switch {
		case ea.IsDir() != eb.IsDir():
			return false
		case ea.IsDir():
			if !equalDirs(a, b, p) {
				return false
			}
		case isSymlink(ea) || isSymlink(eb):
			if !equalLinks(a, b, p, ea, eb) {
				return false
			}
		case ea.Mode().IsRegular() && eb.Mode().IsRegular():
			if ea.Size() != eb.Size() || !equalFiles(a, b, p) {
				return false
			}
		default:
			// Sockets, devices, and other oddities cannot be compared.
			return false
		}
	}
	return true
}

func equalLinks(a, b billy.Filesystem, p string, ea, eb os.FileInfo) bool {
	if !isSymlink(ea) || !isSymlink(eb) {
		return false
	}
	ta, err := a.Readlink(p)
	if err != nil {
		return false
	}
	tb, err := b.Readlink(p)
	if err != nil {
		return false
	}
	return ta == tb
}

func equalFiles(a, b billy.Filesystem, p string) bool {
	fa, err := a.Open(p)
	if err != nil {
		return false
	}
	defer fa.Close()
	fb, err := b.Open(p)
	if err != nil {
		return false
	}
	defer fb.Close()

	bufA := make([]byte, compareChunk)
	bufB := make([]byte, compareChunk)
	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)
		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false
		}
		switch {
		case errA == nil && errB == nil:
		case atEOF(errA) && atEOF(errB):
			return true
		default:
			return false
		}
	}
}

func atEOF(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}

func isSymlink(fi os.FileInfo) bool {
	return fi.Mode()&os.ModeSymlink != 0
}
