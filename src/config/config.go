// Package config defines the savesync configuration document.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultPath is where commands look for the configuration when --config is
// not given.
const DefaultPath = "config/config.json"

const (
	DefaultSavesDir    = "saves"
	DefaultAuthorName  = "savesync"
	DefaultAuthorEmail = "savesync@localhost"
)

// SaveEntry names one game and the placeholder spec of its save folder.
// The field tags match the historical document format, which capitalizes
// entry keys.
type SaveEntry struct {
	Name    string `json:"Name" mapstructure:"Name"`
	SaveDir string `json:"SaveDir" mapstructure:"SaveDir"`
}

// Config is the merged configuration: document values plus flag and
// environment overrides.
type Config struct {
	// RepoRoot is the version-controlled directory holding the backup tree.
	RepoRoot string `json:"repo_root" mapstructure:"repo_root"`
	// SavesDir is the backup tree's directory, relative to RepoRoot.
	SavesDir string `json:"saves_dir" mapstructure:"saves_dir"`
	// AuthorName and AuthorEmail sign sync commits.
	AuthorName  string `json:"author_name" mapstructure:"author_name"`
	AuthorEmail string `json:"author_email" mapstructure:"author_email"`
	// Saves lists the game folders to reconcile.
	Saves []SaveEntry `json:"saves" mapstructure:"saves"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.RepoRoot == "" {
		c.RepoRoot = "."
	}
	if c.SavesDir == "" {
		c.SavesDir = DefaultSavesDir
	}
	if c.AuthorName == "" {
		c.AuthorName = DefaultAuthorName
	}
	if c.AuthorEmail == "" {
		c.AuthorEmail = DefaultAuthorEmail
	}
}

// Validate rejects configurations the engine cannot run with. Individual
// save entries are not validated here: an incomplete entry is skipped at
// run time with a diagnostic instead of failing the whole document.
func (c *Config) Validate() error {
	if c.RepoRoot == "" {
		return errors.New("repo_root must not be empty")
	}
	if filepath.IsAbs(c.SavesDir) {
		return fmt.Errorf("saves_dir must be relative to repo_root, got %q", c.SavesDir)
	}
	clean := filepath.Clean(c.SavesDir)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("saves_dir %q escapes or coincides with the repository root", c.SavesDir)
	}
	return nil
}

// SavesRoot is the backup-tree root under RepoRoot.
func (c *Config) SavesRoot() string {
	return filepath.Join(c.RepoRoot, c.SavesDir)
}
