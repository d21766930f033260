package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goaltray/goaltray/internal/models"
)

func useTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	return dir
}

func TestGlobalDirHonoursEnv(t *testing.T) {
	dir := useTempHome(t)

	got, err := GlobalDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	settings, err := GlobalSettingsFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SettingsFileName), settings)
}

func TestLoadSettingsDefaultsWhenMissing(t *testing.T) {
	useTempHome(t)

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.NewSettings(), s)
}

func TestSaveAndLoadSettings(t *testing.T) {
	useTempHome(t)

	s := models.NewSettings()
	s.Tray.Variant = models.VariantSimple
	s.Tray.Labels = models.LabelsEN
	require.NoError(t, SaveSettings(s))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.VariantSimple, loaded.Tray.Variant)
	assert.Equal(t, models.LabelsEN, loaded.Tray.Labels)
}

func TestSaveSettingsRejectsInvalid(t *testing.T) {
	useTempHome(t)

	s := models.NewSettings()
	s.Tray.Variant = "fancy"
	assert.Error(t, SaveSettings(s))
}

func TestLoadSettingsPartialFile(t *testing.T) {
	dir := useTempHome(t)
	path := filepath.Join(dir, SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("tray:\n  labels: en\n"), 0o644))

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.LabelsEN, s.Tray.Labels)
	assert.Equal(t, models.VariantRich, s.Tray.Variant)
}

func TestLoadSettingsInvalidFile(t *testing.T) {
	dir := useTempHome(t)
	path := filepath.Join(dir, SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("tray:\n  variant: fancy\n"), 0o644))

	_, err := LoadSettings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tray.variant")
}

func TestDaemonInfoLifecycle(t *testing.T) {
	useTempHome(t)

	info, err := LoadDaemonInfo()
	require.NoError(t, err)
	assert.Nil(t, info)

	require.NoError(t, SaveDaemonInfo(models.NewDaemonInfo("localhost", 1234, os.Getpid())))

	running, info, err := IsDaemonRunning()
	require.NoError(t, err)
	assert.True(t, running)
	require.NotNil(t, info)
	assert.Equal(t, 1234, info.Port)

	// Another pid must not remove our file.
	require.NoError(t, RemoveDaemonInfoFor(os.Getpid()+1))
	info, err = LoadDaemonInfo()
	require.NoError(t, err)
	assert.NotNil(t, info)

	require.NoError(t, RemoveDaemonInfoFor(os.Getpid()))
	info, err = LoadDaemonInfo()
	require.NoError(t, err)
	assert.Nil(t, info)

	// Removing twice is fine.
	assert.NoError(t, RemoveDaemonInfo())
}

func TestLoadGoals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "goals.yaml")
	content := `- id: a
  title: Write report
  completed: false
- id: b
  title: Ship
  completed: true
  impediments: waiting
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	goals, err := LoadGoals(path)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "Write report", goals[0].Title)
	assert.Equal(t, "waiting", goals[1].Impediment())
}

func TestLoadGoalsMissingFile(t *testing.T) {
	_, err := LoadGoals(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
