package cli

import (
	"io"

	"github.com/spf13/cobra"
)

func newApplyCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "apply [game ...]",
		Short: "Restore save folders from the repository onto this machine",
		Long: "Apply mirrors backed-up saves onto the local machine. The repository\n" +
			"is pulled and checked first but never written to. Positional arguments\n" +
			"are glob patterns over entry names; no arguments means every entry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(cmd, stdout, args)
			if err != nil {
				return err
			}
			_, err = eng.Apply(cmd.Context())
			return err
		},
	}
}
