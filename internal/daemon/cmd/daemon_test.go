package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goaltray/goaltray/internal/config"
	"github.com/goaltray/goaltray/internal/daemon/menu"
	"github.com/goaltray/goaltray/internal/daemon/watcher"
	"github.com/goaltray/goaltray/internal/models"
)

func newTestDaemon(t *testing.T) *daemon {
	t.Helper()
	d := &daemon{
		mode:     modeHeadless,
		settings: models.NewSettings(),
		logger:   zap.NewNop(),
		level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		stopSig:  make(chan struct{}),
	}
	d.wire()
	return d
}

func labelOf(m *menu.Menu, id string) string {
	var label string
	m.Walk(func(it menu.Item, _ int) {
		if it.ID == id {
			label = it.Label
		}
	})
	return label
}

func TestApplySettingsRerendersMenu(t *testing.T) {
	d := newTestDaemon(t)
	h := d.host.(*headlessHost)

	goals := []models.Goal{{ID: "a", Title: "Run"}}
	require.NoError(t, d.router.RefreshTrayMenu(context.Background(), goals))
	assert.Equal(t, menu.PortugueseLabels.Quit, labelOf(h.Installed(), menu.IDQuit))

	s := models.NewSettings()
	s.Tray.Labels = models.LabelsEN
	s.Tray.Variant = models.VariantSimple
	s.Log.Level = "debug"
	d.applySettings(s)

	m := h.Installed()
	assert.Equal(t, menu.EnglishLabels.Quit, labelOf(m, menu.IDQuit))
	a, ok := m.Lookup("a")
	require.True(t, ok, "simple variant routes the raw goal id")
	assert.Equal(t, menu.ActionToggle, a.Kind)
	assert.Equal(t, zap.DebugLevel, d.level.Level())
	assert.Equal(t, models.LabelsEN, d.settings.Tray.Labels)
}

func TestQuitClickStopsHeadlessHost(t *testing.T) {
	d := newTestDaemon(t)

	started := make(chan struct{})
	exited := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- d.host.Run(func() { close(started) }, func() { close(exited) })
	}()

	<-started
	require.NoError(t, d.router.RefreshTrayMenu(context.Background(), nil))
	d.router.OnTrayClick(menu.IDQuit)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("host did not stop after quit")
	}
	<-exited

	// A second quit is harmless.
	d.host.Quit()
}

func TestVersionRowsReflectSettings(t *testing.T) {
	s := models.NewSettings()
	s.Tray.Variant = models.VariantSimple
	s.Tray.Labels = models.LabelsEN
	s.Bridge.Port = 4711

	rows := versionRows(s)
	values := make(map[string]string, len(rows))
	for _, r := range rows {
		values[r.label] = r.value
	}
	assert.Equal(t, "simple menu, en labels", values["Tray"])
	assert.Equal(t, "ws://localhost:4711/bridge", values["Bridge"])
	assert.Equal(t, "info", values["Logging"])

	s.Bridge.Port = 0
	assert.Contains(t, versionRows(s)[3].value, ":dynamic/bridge")
}

func TestReloadSettingsUntilWatcherStops(t *testing.T) {
	d := newTestDaemon(t)
	h := d.host.(*headlessHost)
	require.NoError(t, d.router.RefreshTrayMenu(context.Background(), nil))

	dir := t.TempDir()
	d.settingsPath = filepath.Join(dir, config.SettingsFileName)
	w, err := watcher.New(dir, zap.NewNop(), config.SettingsFileName)
	require.NoError(t, err)
	require.NoError(t, w.Start())

	done := make(chan struct{})
	go func() {
		d.reloadSettings(w)
		close(done)
	}()

	require.NoError(t, os.WriteFile(d.settingsPath, []byte("tray:\n  labels: en\n"), 0o644))
	require.Eventually(t, func() bool {
		return labelOf(h.Installed(), menu.IDQuit) == menu.EnglishLabels.Quit
	}, 3*time.Second, 20*time.Millisecond)

	w.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reload loop still running after watcher stopped")
	}
}
