package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Location is a fully resolved save directory: the absolute path, and the
// leaf folder name that names its mirror inside the backup tree.
type Location struct {
	Path string
	Leaf string
}

// ResolveSaveDir expands the placeholder tokens in spec, normalizes the
// result to an absolute path, and extracts the leaf folder name.
func ResolveSaveDir(r Resolver, spec string) (Location, error) {
	if strings.TrimSpace(spec) == "" {
		return Location{}, errors.New("empty save directory spec")
	}
	expanded, err := Expand(r, spec)
	if err != nil {
		return Location{}, err
	}
	expanded = expandTilde(expanded)
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return Location{}, fmt.Errorf("normalize %q: %w", spec, err)
	}
	leaf := filepath.Base(abs)
	if leaf == "." || leaf == ".." || leaf == string(filepath.Separator) || leaf == "/" {
		return Location{}, fmt.Errorf("save directory %q has no usable folder name", spec)
	}
	return Location{Path: abs, Leaf: leaf}, nil
}

// Expand replaces %Key% tokens in spec. Keys the resolver knows win; for
// anything else a same-named environment variable is substituted when set,
// and otherwise the token stays literal. Resolver failures other than
// ErrUnknownFolder abort the expansion.
func Expand(r Resolver, spec string) (string, error) {
	var b strings.Builder
	rest := spec
	for {
		i := strings.IndexByte(rest, '%')
		if i < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		j := strings.IndexByte(rest[i+1:], '%')
		if j < 0 {
			// Unbalanced token, keep the remainder as-is.
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:i])
		key := rest[i+1 : i+1+j]
		token := rest[i : i+j+2]
		rest = rest[i+j+2:]
		if key == "" {
			b.WriteString(token)
			continue
		}
		path, err := r.SpecialFolder(key)
		switch {
		case err == nil:
			b.WriteString(path)
		case errors.Is(err, ErrUnknownFolder):
			if v, ok := os.LookupEnv(key); ok {
				b.WriteString(v)
			} else {
				b.WriteString(token)
			}
		default:
			return "", fmt.Errorf("resolve %s: %w", token, err)
		}
	}
}

func expandTilde(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}
