package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDaemonInfoURLs(t *testing.T) {
	info := NewDaemonInfo("localhost", 4321, 99)
	assert.Equal(t, "ws://localhost:4321/bridge", info.BridgeURL())
	assert.Equal(t, "http://localhost:4321/status", info.StatusURL())
	assert.Equal(t, 1, info.Version)
	assert.False(t, info.StartedAt.IsZero())
}
