package dirtree

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"savesync/src/util/progress"
)

// DefaultProgressThreshold is the file size at which copies start reporting
// streaming progress.
const DefaultProgressThreshold = 8 << 20

// ReplaceOptions control how ReplaceContents mutates the destination.
type ReplaceOptions struct {
	// Staged copies into a temporary sibling of the destination and renames
	// it into place instead of clearing the destination first. A crash can
	// then leave a stray temp directory, never a half-written destination.
	Staged bool
	// Progress, when non-nil, receives a streaming progress line for every
	// file at or above ProgressThreshold.
	Progress io.Writer
	// ProgressThreshold overrides DefaultProgressThreshold when positive.
	ProgressThreshold int64
}

func (o ReplaceOptions) threshold() int64 {
	if o.ProgressThreshold > 0 {
		return o.ProgressThreshold
	}
	return DefaultProgressThreshold
}

// ReplaceContents makes dst an exact copy of src's contents. src must be an
// existing directory and is never modified; dst and missing parents are
// created. The default mode clears dst's children and then copies, so a
// crash mid-way can leave dst partial. Staged mode builds the copy aside
// and swaps it in.
func ReplaceContents(src, dst string, opts ReplaceOptions) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", src)
	}
	if opts.Staged {
		return replaceStaged(src, dst, info.Mode().Perm(), opts)
	}
	if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return err
	}
	dstFS := osfs.New(dst)
	if err := ClearTree(dstFS); err != nil {
		return err
	}
	return CopyTree(osfs.New(src), dstFS, opts)
}

func replaceStaged(src, dst string, mode os.FileMode, opts ReplaceOptions) error {
	parent := filepath.Dir(dst)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}
	tmp, err := os.MkdirTemp(parent, "."+filepath.Base(dst)+".stage-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)
	if err := os.Chmod(tmp, mode); err != nil {
		return err
	}
	if err := CopyTree(osfs.New(src), osfs.New(tmp), opts); err != nil {
		return err
	}
	if err := os.RemoveAll(dst); err != nil {
		return err
	}
	return os.Rename(tmp, dst)
}

// ClearTree removes every child of the filesystem root.
func ClearTree(fs billy.Filesystem) error {
	entries, err := fs.ReadDir(".")
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := util.RemoveAll(fs, e.Name()); err != nil {
			return err
		}
	}
	return nil
}

// CopyTree recursively copies every entry under src's root into dst.
// Files already in dst are overwritten in place; extra files are left
// alone. Callers wanting an exact mirror clear dst first (ReplaceContents
// does).
func CopyTree(src, dst billy.Filesystem, opts ReplaceOptions) error {
	return copyDir(src, dst, ".", opts)
}

func copyDir(src, dst billy.Filesystem, dir string, opts ReplaceOptions) error {
	entries, err := src.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		p := path.Join(dir, e.Name())
		switch {
		case e.IsDir():
			if err := dst.MkdirAll(p, e.Mode().Perm()); err != nil {
				return err
			}
			if err := copyDir(src, dst, p, opts); err != nil {
				return err
			}
		case isSymlink(e):
			target, err := src.Readlink(p)
			if err != nil {
				return err
			}
			if err := dst.Symlink(target, p); err != nil {
				return err
			}
		case !e.Mode().IsRegular():
			return fmt.Errorf("%s: unsupported file type %s", p, e.Mode().Type())
		default:
			if err := copyFile(src, dst, p, e, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyFile(src, dst billy.Filesystem, p string, fi os.FileInfo, opts ReplaceOptions) error {
	in, err := src.Open(p)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := dst.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return err
	}
	var r io.Reader = in
	if opts.Progress != nil && fi.Size() >= opts.threshold() {
		r = progress.NewReader(in, fi.Size(), p, opts.Progress)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", p, err)
	}
	return out.Close()
}
