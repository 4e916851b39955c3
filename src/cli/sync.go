package cli

import (
	"io"

	"github.com/spf13/cobra"
)

func newSyncCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "sync [game ...]",
		Short: "Back up local save folders into the repository",
		Long: "Sync copies each configured save folder into the backup repository,\n" +
			"committing and pushing every change. Positional arguments are glob\n" +
			"patterns over entry names; no arguments means every entry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(cmd, stdout, args)
			if err != nil {
				return err
			}
			_, err = eng.Sync(cmd.Context())
			return err
		},
	}
}
