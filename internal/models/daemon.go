package models

import (
	"net"
	"strconv"
	"time"
)

// DaemonInfo represents the daemon connection information.
// This corresponds to ~/.goaltray/daemon.yaml.
type DaemonInfo struct {
	Version   int       `yaml:"version"`
	Host      string    `yaml:"host"`
	Port      int       `yaml:"port"`
	PID       int       `yaml:"pid"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewDaemonInfo creates a new daemon info with current values.
func NewDaemonInfo(host string, port, pid int) *DaemonInfo {
	return &DaemonInfo{
		Version:   1,
		Host:      host,
		Port:      port,
		PID:       pid,
		StartedAt: time.Now().UTC(),
	}
}

// BridgeURL returns the websocket URL of the daemon's front-end bridge.
func (d *DaemonInfo) BridgeURL() string {
	return "ws://" + d.addr() + "/bridge"
}

// StatusURL returns the HTTP URL of the daemon's status endpoint.
func (d *DaemonInfo) StatusURL() string {
	return "http://" + d.addr() + "/status"
}

func (d *DaemonInfo) addr() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}
