package config

import (
	"errors"
	"os"
	"syscall"

	"github.com/goaltray/goaltray/internal/models"
)

// LoadDaemonInfo loads the daemon connection info from ~/.goaltray/daemon.yaml.
// Returns nil if the file doesn't exist.
func LoadDaemonInfo() (*models.DaemonInfo, error) {
	path, err := GlobalDaemonFile()
	if err != nil {
		return nil, err
	}
	info, err := LoadYAMLOrDefault(path, func() *models.DaemonInfo { return nil })
	if err != nil {
		return nil, err
	}
	return info, nil
}

// SaveDaemonInfo saves the daemon connection info to ~/.goaltray/daemon.yaml.
func SaveDaemonInfo(info *models.DaemonInfo) error {
	path, err := GlobalDaemonFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveDaemonInfo removes the daemon.yaml file.
func RemoveDaemonInfo() error {
	path, err := GlobalDaemonFile()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// RemoveDaemonInfoFor removes daemon.yaml only if it still belongs to pid.
// A second daemon that raced us to startup keeps its file.
func RemoveDaemonInfoFor(pid int) error {
	info, err := LoadDaemonInfo()
	if err != nil {
		return err
	}
	if info == nil || info.PID != pid {
		return nil
	}
	return RemoveDaemonInfo()
}

// IsDaemonRunning checks if the daemon process is still running.
// Returns true if daemon.yaml exists and the PID is alive. A stale file is removed.
func IsDaemonRunning() (bool, *models.DaemonInfo, error) {
	info, err := LoadDaemonInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	if !processAlive(info.PID) {
		_ = RemoveDaemonInfo()
		return false, info, nil
	}
	return true, info, nil
}

// processAlive sends signal 0 to pid. On Unix, FindProcess always succeeds.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
