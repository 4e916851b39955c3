package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"savesync/src/backend/directory"
	"savesync/src/backup"
	"savesync/src/platform"
	"savesync/src/safety"
	"savesync/src/target"
	"savesync/src/vcs"
)

// buildEngine assembles a backup.Engine from the loaded config, the global
// flags, and the command's positional name patterns.
func buildEngine(cmd *cobra.Command, stdout io.Writer, args []string) (*backup.Engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	sel, err := target.New(args)
	if err != nil {
		return nil, err
	}

	repo, err := vcs.Open(cfg.RepoRoot, vcs.Options{
		AuthorName:  cfg.AuthorName,
		AuthorEmail: cfg.AuthorEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("opening backup repository %s: %w", cfg.RepoRoot, err)
	}

	opts := getSafetyOptions(cmd)
	staged, _ := cmd.Root().PersistentFlags().GetBool("staged")
	stdin := cmd.InOrStdin()

	confirm := func(name, source, dest string) (bool, error) {
		return safety.Confirm(opts, stdin, stdout, fmt.Sprintf("[%s] Overwrite?", name))
	}

	return backup.New(backup.Options{
		Entries:  cfg.Saves,
		Layout:   directory.NewLayout(cfg.SavesRoot()),
		RepoRoot: cfg.RepoRoot,
		Folders:  platform.Dirs{},
		Repo:     repo,
		Confirm:  confirm,
		Select:   sel,
		Out:      stdout,
		DryRun:   opts.DryRun,
		Staged:   staged,
	})
}
