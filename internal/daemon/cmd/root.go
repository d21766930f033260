// Package cmd is the goaltrayd command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/goaltray/goaltray/internal/config"
)

var (
	foreground bool
	port       int
)

var rootCmd = &cobra.Command{
	Use:   "goaltrayd",
	Short: "goaltray daemon: system tray menu for goal tracking",
	Long: `goaltrayd owns the tray icon and its menu. Front-ends connect over the
bridge to push goal lists and receive click events.

With --foreground the menu is drawn in the terminal instead of the
system tray. Without a terminal it runs headless.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.EnsureGlobalDir(); err != nil {
			return fmt.Errorf("failed to create global directory: %w", err)
		}

		running, info, err := config.IsDaemonRunning()
		if err != nil {
			return fmt.Errorf("failed to check daemon status: %w", err)
		}
		if running {
			return fmt.Errorf("daemon already running on port %d (PID %d)", info.Port, info.PID)
		}

		mode := modeTray
		if foreground {
			mode = modeHeadless
			if term.IsTerminal(int(os.Stdout.Fd())) {
				mode = modeTerminal
			}
		}

		d, err := newDaemon(mode, port)
		if err != nil {
			return err
		}
		return d.run()
	},
}

func init() {
	rootCmd.Flags().BoolVar(&foreground, "foreground", false, "Run in the terminal instead of the system tray")
	rootCmd.Flags().IntVar(&port, "port", -1, "Bridge port (0 for dynamic allocation, default from settings)")
}

// Execute runs the daemon command tree.
func Execute() error {
	return rootCmd.Execute()
}
