// Package main is the entry point for the goaltrayd daemon.
package main

import (
	"os"

	"github.com/goaltray/goaltray/internal/daemon/cmd"
)

// systray.Run must occupy the main goroutine on macOS, so the tray
// host runs from here through the command's RunE.
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
