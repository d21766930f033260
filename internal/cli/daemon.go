package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/goaltray/goaltray/internal/config"
	"github.com/goaltray/goaltray/internal/daemon/bridge"
	"github.com/goaltray/goaltray/internal/daemon/server"
	"github.com/goaltray/goaltray/internal/models"
)

const daemonBinary = "goaltrayd"

var errDaemonNotRunning = errors.New("daemon not running (start it with: goaltray daemon start)")

// EnsureDaemon makes sure the daemon is running, starting it if necessary.
func EnsureDaemon() error {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if running {
		return nil
	}

	// Clean up stale daemon info if it exists
	if info != nil {
		_ = config.RemoveDaemonInfo()
	}

	return startDaemon()
}

// startDaemon starts the daemon process in the background.
func startDaemon() error {
	daemonPath, err := findDaemonBinary()
	if err != nil {
		return err
	}

	cmd := exec.Command(daemonPath)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}
	// The daemon outlives us; don't leave a zombie entry behind while we poll.
	go func() { _ = cmd.Wait() }()

	// Wait for daemon to be ready (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		running, _, err := config.IsDaemonRunning()
		if err == nil && running {
			return nil
		}
	}

	return fmt.Errorf("daemon failed to start within timeout")
}

// findDaemonBinary locates the goaltrayd binary.
func findDaemonBinary() (string, error) {
	// Try PATH first
	path, err := exec.LookPath(daemonBinary)
	if err == nil {
		return path, nil
	}

	// Try next to the current executable
	execPath, err := os.Executable()
	if err == nil {
		daemonPath := filepath.Join(filepath.Dir(execPath), daemonBinary)
		if _, err := os.Stat(daemonPath); err == nil {
			return daemonPath, nil
		}
	}

	// Try build directory
	buildPath := filepath.Join("build", daemonBinary)
	if _, err := os.Stat(buildPath); err == nil {
		return buildPath, nil
	}

	return "", fmt.Errorf("%s not found. Install or build it first", daemonBinary)
}

// runningDaemon returns the info of the live daemon.
func runningDaemon() (*models.DaemonInfo, error) {
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return nil, fmt.Errorf("failed to check daemon status: %w", err)
	}
	if !running || info == nil {
		return nil, errDaemonNotRunning
	}
	return info, nil
}

// connectDaemon opens a bridge connection to the running daemon.
func connectDaemon(ctx context.Context) (*bridge.Client, error) {
	info, err := runningDaemon()
	if err != nil {
		return nil, err
	}
	return bridge.Dial(ctx, info.BridgeURL())
}

// GetDaemonStatus returns the live daemon's status, or nil when it is not running.
func GetDaemonStatus(ctx context.Context) (*models.DaemonInfo, *server.Status, error) {
	info, err := runningDaemon()
	if errors.Is(err, errDaemonNotRunning) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	st, err := server.FetchStatus(ctx, info.StatusURL())
	if err != nil {
		return info, nil, err
	}
	return info, st, nil
}
