package tray

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/goaltray/goaltray/internal/daemon/menu"
	"github.com/goaltray/goaltray/internal/daemon/router"
)

func TestTrimLabel(t *testing.T) {
	short := "🚫 Ship (Blocked: CI)"
	assert.Equal(t, short, TrimLabel(short))

	long := "🚫 Ship (Blocked: " + strings.Repeat("x", 200) + ")"
	got := TrimLabel(long)
	assert.LessOrEqual(t, ansi.StringWidth(got), maxLabelWidth)
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestInstallBeforeReady(t *testing.T) {
	h := New(nil, "Metas", nil)
	err := h.Install(menu.Build(nil, menu.DefaultOptions()))
	assert.ErrorIs(t, err, router.ErrTrayUnavailable)
}

func TestIconEmbedded(t *testing.T) {
	assert.True(t, len(iconData) > 8)
	assert.Equal(t, "\x89PNG", string(iconData[:4]))
}
