// Package platform resolves logical special-folder names (Documents,
// AppData, ...) to real filesystem paths and expands the placeholder tokens
// used in configured save-directory specs.
package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
)

// ErrUnknownFolder reports a special-folder key the resolver has no mapping
// for. Expansion treats it as "try an environment variable instead"; any
// other resolver error is surfaced to the caller.
var ErrUnknownFolder = errors.New("unknown special folder")

// Resolver maps a logical folder key to an absolute path. Keys are matched
// case-insensitively.
type Resolver interface {
	SpecialFolder(key string) (string, error)
}

// Dirs resolves the folder keys games commonly store saves under.
//
// Documents maps to the user documents directory on every OS. AppData and
// AppDataLocal map to %APPDATA% and %LOCALAPPDATA% on Windows; elsewhere
// they map to the XDG data and state homes, which is where Proton prefixes
// and native ports keep the equivalent trees.
type Dirs struct{}

func (Dirs) SpecialFolder(key string) (string, error) {
	switch {
	case strings.EqualFold(key, "Documents"):
		return xdg.UserDirs.Documents, nil
	case strings.EqualFold(key, "AppData"):
		if runtime.GOOS == "windows" {
			return windowsFolder("APPDATA", "AppData", "Roaming")
		}
		return xdg.DataHome, nil
	case strings.EqualFold(key, "AppDataLocal"):
		if runtime.GOOS == "windows" {
			return windowsFolder("LOCALAPPDATA", "AppData", "Local")
		}
		return xdg.StateHome, nil
	case strings.EqualFold(key, "Home"):
		return os.UserHomeDir()
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFolder, key)
}

// windowsFolder prefers the environment variable Windows maintains for the
// folder and falls back to its conventional home-relative location.
func windowsFolder(env string, rel ...string) (string, error) {
	if v := os.Getenv(env); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, rel...)...), nil
}
