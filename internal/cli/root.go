// Package cli implements the goaltray CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "goaltray",
	Short: "Drive the goaltray tray daemon",
	Long: `goaltray manages the goaltrayd daemon and talks to it over the bridge.
It can preview the tray menu for a goals file, push goals to the tray
and simulate clicks.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(clickCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(listenCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}
