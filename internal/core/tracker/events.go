package tracker

import "time"

// State represents whether working time is accruing.
type State string

const (
	StateIdle    State = "idle"
	StateWorking State = "working"
)

// EventType defines the type of Tracker event.
type EventType string

const (
	EventStateChange      EventType = "state_change"
	EventProgress         EventType = "progress"
	EventReminder         EventType = "reminder"
	EventSessionSaved     EventType = "session_saved"
	EventSessionDiscarded EventType = "session_discarded"
	EventSaveFailed       EventType = "save_failed"
	EventLogLoaded        EventType = "log_loaded"
	EventSettingsChange   EventType = "settings_change"
)

// Event represents a Tracker update for observers.
type Event struct {
	Type     EventType
	State    State
	Elapsed  time.Duration
	Progress float64
	Message  string
	Entry    string
	At       time.Time
}
