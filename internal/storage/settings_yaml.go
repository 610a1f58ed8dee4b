package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"devtime/internal/core/model"
	"devtime/internal/platform"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Pointer fields tell an absent key apart from a zero value.
type yamlSettings struct {
	ReminderMinutes  *int    `yaml:"reminder_minutes,omitempty"`
	DailyGoalMinutes *int    `yaml:"daily_goal_minutes,omitempty"`
	SilentReminders  *bool   `yaml:"silent_reminders,omitempty"`
	WorkingMessage   *string `yaml:"working_message,omitempty"`
	BreakMessage     *string `yaml:"break_message,omitempty"`
}

// SettingsStore keeps user preferences in a YAML file.
type SettingsStore struct {
	path string
}

// NewSettingsStore returns a store backed by the file at path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// DefaultSettingsPath returns <config dir>/<appName>/settings.yaml.
func DefaultSettingsPath(appName string) (string, error) {
	return resolveAppFile(appName, settingsFileName)
}

// Path returns the backing file path.
func (store *SettingsStore) Path() string {
	return store.path
}

// Load reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func (store *SettingsStore) Load() (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings.Clamped(), nil
}

// Save writes user preferences to YAML.
func (store *SettingsStore) Save(settings model.Settings) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	settings = settings.Clamped()
	fileData := yamlSettings{
		ReminderMinutes:  &settings.ReminderMinutes,
		DailyGoalMinutes: &settings.DailyGoalMinutes,
		SilentReminders:  &settings.SilentReminders,
		WorkingMessage:   &settings.WorkingMessage,
		BreakMessage:     &settings.BreakMessage,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveAppFile(appName, fileName string) (string, error) {
	configDir, err := platform.NewService().GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, fileName), nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.ReminderMinutes != nil {
		settings.ReminderMinutes = *fileData.ReminderMinutes
	}
	if fileData.DailyGoalMinutes != nil {
		settings.DailyGoalMinutes = *fileData.DailyGoalMinutes
	}
	if fileData.SilentReminders != nil {
		settings.SilentReminders = *fileData.SilentReminders
	}
	if fileData.WorkingMessage != nil {
		settings.WorkingMessage = *fileData.WorkingMessage
	}
	if fileData.BreakMessage != nil {
		settings.BreakMessage = *fileData.BreakMessage
	}
}
