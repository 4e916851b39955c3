package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"savesync/src/backend/directory"
	"savesync/src/config"
	"savesync/src/dirtree"
	"savesync/src/platform"
)

func newStatusCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Compare local save folders against their backups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			layout := directory.NewLayout(cfg.SavesRoot())
			tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSTATE")
			for _, entry := range cfg.Saves {
				name := entry.Name
				if name == "" {
					name = "(unnamed)"
				}
				fmt.Fprintf(tw, "%s\t%s\n", name, entryState(layout, entry))
			}
			return tw.Flush()
		},
	}
}

// entryState answers where one configured save stands relative to its
// backup. It only reads the filesystem.
func entryState(layout directory.Layout, entry config.SaveEntry) string {
	if entry.Name == "" || entry.SaveDir == "" {
		return "incomplete entry"
	}
	loc, err := platform.ResolveSaveDir(platform.Dirs{}, entry.SaveDir)
	if err != nil {
		return fmt.Sprintf("unresolved: %v", err)
	}
	backupPath := layout.EntryPath(entry.Name, loc.Leaf)

	localExists := pathIsDir(loc.Path)
	backupExists := pathIsDir(backupPath)
	switch {
	case !localExists && !backupExists:
		return "no save folder, no backup"
	case !localExists:
		return "backup only"
	case !backupExists:
		return "not backed up"
	case dirtree.EqualPaths(loc.Path, backupPath):
		return "in sync"
	default:
		return "differs"
	}
}

func pathIsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
