package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"savesync/src/config"
)

// loadConfig reads the JSON config file named by --config, layers SAVESYNC_*
// environment variables over it, and lets --repo override the repository
// root. Precedence: flag, then environment, then file, then defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("SAVESYNC")
	v.AutomaticEnv()

	v.SetDefault("saves_dir", config.DefaultSavesDir)
	v.SetDefault("author_name", config.DefaultAuthorName)
	v.SetDefault("author_email", config.DefaultAuthorEmail)

	if err := v.BindPFlag("repo_root", cmd.Root().PersistentFlags().Lookup("repo")); err != nil {
		return nil, err
	}

	path, _ := cmd.Root().PersistentFlags().GetString("config")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &config.Config{
		RepoRoot:    v.GetString("repo_root"),
		SavesDir:    v.GetString("saves_dir"),
		AuthorName:  v.GetString("author_name"),
		AuthorEmail: v.GetString("author_email"),
	}
	if err := v.UnmarshalKey("saves", &cfg.Saves); err != nil {
		return nil, fmt.Errorf("parsing saves in %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	abs, err := filepath.Abs(cfg.RepoRoot)
	if err != nil {
		return nil, err
	}
	cfg.RepoRoot = abs
	return cfg, nil
}
