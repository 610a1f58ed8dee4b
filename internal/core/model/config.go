package model

import "time"

// Bounds for user-editable settings.
const (
	MinReminderMinutes = 5
	MaxReminderMinutes = 120

	MinDailyGoalMinutes = 30
	MaxDailyGoalMinutes = 600
)

// Defaults applied when a setting has never been stored.
const (
	DefaultReminderMinutes  = 25
	DefaultDailyGoalMinutes = 240
	DefaultWorkingMessage   = "You are currently working"
	DefaultBreakMessage     = "You are on a break"
)

// Settings contains the persisted tracker preferences.
type Settings struct {
	ReminderMinutes  int
	DailyGoalMinutes int
	SilentReminders  bool
	WorkingMessage   string
	BreakMessage     string
}

// DefaultSettings returns the settings used on first launch.
func DefaultSettings() Settings {
	return Settings{
		ReminderMinutes:  DefaultReminderMinutes,
		DailyGoalMinutes: DefaultDailyGoalMinutes,
		SilentReminders:  false,
		WorkingMessage:   DefaultWorkingMessage,
		BreakMessage:     DefaultBreakMessage,
	}
}

// Clamped returns a copy with every bounded field forced into range.
func (settings Settings) Clamped() Settings {
	settings.ReminderMinutes = ClampReminderMinutes(settings.ReminderMinutes)
	settings.DailyGoalMinutes = ClampDailyGoalMinutes(settings.DailyGoalMinutes)
	return settings
}

// ReminderInterval is the cadence between break reminders.
func (settings Settings) ReminderInterval() time.Duration {
	return time.Duration(settings.ReminderMinutes) * time.Minute
}

// DailyGoal is the target working time per day.
func (settings Settings) DailyGoal() time.Duration {
	return time.Duration(settings.DailyGoalMinutes) * time.Minute
}

// ClampReminderMinutes forces minutes into [MinReminderMinutes, MaxReminderMinutes].
func ClampReminderMinutes(minutes int) int {
	return clampInt(minutes, MinReminderMinutes, MaxReminderMinutes)
}

// ClampDailyGoalMinutes forces minutes into [MinDailyGoalMinutes, MaxDailyGoalMinutes].
func ClampDailyGoalMinutes(minutes int) int {
	return clampInt(minutes, MinDailyGoalMinutes, MaxDailyGoalMinutes)
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
