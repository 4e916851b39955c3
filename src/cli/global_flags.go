package cli

import (
	"github.com/spf13/cobra"

	"savesync/src/config"
	"savesync/src/safety"
)

// addGlobalFlags adds the persistent flags shared by every subcommand.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", config.DefaultPath, "Path to the config file")
	cmd.PersistentFlags().String("repo", "", "Backup repository root (overrides the config file)")
	cmd.PersistentFlags().Bool("dry-run", false, "Show planned actions without making changes")
	cmd.PersistentFlags().BoolP("yes", "y", false, "Assume 'yes' to prompts and run non-interactively")
	cmd.PersistentFlags().Bool("staged", false, "Build each replacement beside its destination, then swap it in")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// getSafetyOptions reads global flags into a safety.Options struct.
func getSafetyOptions(cmd *cobra.Command) safety.Options {
	dry, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
	yes, _ := cmd.Root().PersistentFlags().GetBool("yes")
	return safety.Options{DryRun: dry, Yes: yes}
}
