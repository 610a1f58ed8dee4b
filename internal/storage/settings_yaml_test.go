package storage

import (
	"os"
	"path/filepath"
	"testing"

	"devtime/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	store := NewSettingsStore(filepath.Join(t.TempDir(), "missing", "settings.yaml"))

	settings, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestSaveAndLoadSettings(t *testing.T) {
	store := NewSettingsStore(filepath.Join(t.TempDir(), "nested", "settings.yaml"))
	want := model.Settings{
		ReminderMinutes:  50,
		DailyGoalMinutes: 480,
		SilentReminders:  true,
		WorkingMessage:   "deep work",
		BreakMessage:     "",
	}

	require.NoError(t, store.Save(want))
	got, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSettingsKeepsDefaultsForAbsentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reminder_minutes: 45\n"), 0o644))

	settings, err := NewSettingsStore(path).Load()

	require.NoError(t, err)
	assert.Equal(t, 45, settings.ReminderMinutes)
	assert.Equal(t, model.DefaultDailyGoalMinutes, settings.DailyGoalMinutes)
	assert.Equal(t, model.DefaultWorkingMessage, settings.WorkingMessage)
	assert.Equal(t, model.DefaultBreakMessage, settings.BreakMessage)
}

func TestLoadSettingsClampsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reminder_minutes: 0\ndaily_goal_minutes: 1000\n"), 0o644))

	settings, err := NewSettingsStore(path).Load()

	require.NoError(t, err)
	assert.Equal(t, 5, settings.ReminderMinutes)
	assert.Equal(t, 600, settings.DailyGoalMinutes)
}

func TestLoadSettingsRejectsMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reminder_minutes: [oops\n"), 0o644))

	settings, err := NewSettingsStore(path).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
	assert.Equal(t, model.DefaultSettings(), settings)
}
