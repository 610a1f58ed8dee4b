package tracker

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"devtime/internal/core/model"
)

const (
	sessionNoiseThreshold = time.Second

	reminderTitle = "Break Reminder!"
	resetTitle    = "Reset Timer"
	resetQuestion = "Are you sure you want to reset the session?"
)

// LogStore persists completed session entries, oldest first.
type LogStore interface {
	Load() ([]string, error)
	Append(line string) error
}

// SettingsStore persists settings on every change.
type SettingsStore interface {
	Save(settings model.Settings) error
}

// Prompter displays reminders and confirmations to the user.
type Prompter interface {
	BlockingPrompt(title, message string)
	TransientNotify(message string)
	Confirm(title, message string, onResult func(bool))
}

// Options contains collaborators and runtime options for Tracker.
type Options struct {
	Log          LogStore
	Settings     SettingsStore
	Prompter     Prompter
	Now          func() time.Time
	Rand         *rand.Rand
	TickInterval time.Duration
	Logger       *slog.Logger
}

// Tracker accumulates working time, fires break reminders and records sessions.
type Tracker struct {
	mu            sync.Mutex
	settings      model.Settings
	options       Options
	state         State
	elapsed       time.Duration
	sinceReminder time.Duration
	lastUpdate    time.Time
	entries       []string
	events        []chan Event
	stopCh        chan struct{}
	running       bool
}

type reminder struct {
	silent  bool
	minutes int
	message string
}

// New creates an idle Tracker with the provided settings.
func New(settings model.Settings, options Options) *Tracker {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Rand == nil {
		options.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if options.Prompter == nil {
		options.Prompter = nopPrompter{}
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	return &Tracker{
		settings: settings.Clamped(),
		options:  options,
		state:    StateIdle,
	}
}

// Subscribe registers a new observer channel.
func (tracker *Tracker) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	tracker.mu.Lock()
	tracker.events = append(tracker.events, ch)
	tracker.mu.Unlock()
	return ch
}

// Start launches the ticking loop that drives TickAt from the wall clock.
func (tracker *Tracker) Start() {
	tracker.mu.Lock()
	if tracker.running {
		tracker.mu.Unlock()
		return
	}
	tracker.running = true
	tracker.stopCh = make(chan struct{})
	stopCh := tracker.stopCh
	tracker.mu.Unlock()

	go tracker.run(stopCh)
}

// Stop terminates the ticking loop and closes observers.
func (tracker *Tracker) Stop() {
	tracker.mu.Lock()
	if !tracker.running {
		tracker.mu.Unlock()
		return
	}
	close(tracker.stopCh)
	tracker.running = false
	events := tracker.events
	tracker.events = nil
	tracker.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Close stops the loop and flushes the current session to the log.
func (tracker *Tracker) Close() error {
	tracker.Stop()

	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.saveLocked()
}

// Tick advances the session clock by delta while working.
func (tracker *Tracker) Tick(delta time.Duration) {
	tracker.mu.Lock()
	if tracker.state != StateWorking {
		tracker.mu.Unlock()
		return
	}
	due, fired := tracker.advanceLocked(delta)
	tracker.mu.Unlock()

	if fired {
		tracker.deliver(due)
	}
}

// TickAt advances the session clock by the wall-clock time since the last update.
func (tracker *Tracker) TickAt(now time.Time) {
	tracker.mu.Lock()
	if tracker.state != StateWorking {
		tracker.mu.Unlock()
		return
	}
	delta := now.Sub(tracker.lastUpdate)
	tracker.lastUpdate = now
	due, fired := tracker.advanceLocked(delta)
	tracker.mu.Unlock()

	if fired {
		tracker.deliver(due)
	}
}

// StartWork begins or resumes accruing time from now.
func (tracker *Tracker) StartWork() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	tracker.state = StateWorking
	tracker.lastUpdate = tracker.options.Now()
	tracker.emitStateLocked()
}

// PauseWork stops accruing time and saves the current session.
func (tracker *Tracker) PauseWork() error {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	err := tracker.saveLocked()
	tracker.state = StateIdle
	tracker.emitStateLocked()
	return err
}

// ResetSession asks for confirmation, then saves and clears the session.
func (tracker *Tracker) ResetSession() {
	tracker.options.Prompter.Confirm(resetTitle, resetQuestion, func(confirmed bool) {
		if !confirmed {
			return
		}
		if err := tracker.ConfirmReset(); err != nil {
			tracker.options.Logger.Error("reset session", "error", err)
		}
	})
}

// ConfirmReset saves the session, zeroes both counters and goes idle.
// The counters are left untouched when the save fails.
func (tracker *Tracker) ConfirmReset() error {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	if err := tracker.saveLocked(); err != nil {
		return err
	}
	tracker.elapsed = 0
	tracker.sinceReminder = 0
	tracker.state = StateIdle
	tracker.emitStateLocked()
	return nil
}

// SaveSession records the current session unless it is one second or shorter.
func (tracker *Tracker) SaveSession() error {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.saveLocked()
}

// LoadLog replaces the in-memory log with the stored entries, newest first.
func (tracker *Tracker) LoadLog() error {
	if tracker.options.Log == nil {
		return nil
	}
	lines, err := tracker.options.Log.Load()
	if err != nil {
		return fmt.Errorf("load session log: %w", err)
	}

	entries := make([]string, len(lines))
	for index, line := range lines {
		entries[len(lines)-1-index] = line
	}

	tracker.mu.Lock()
	tracker.entries = entries
	tracker.emitLocked(Event{
		Type:  EventLogLoaded,
		State: tracker.state,
		At:    tracker.options.Now(),
	})
	tracker.mu.Unlock()
	return nil
}

// FireReminder shows a break reminder with a random motivational message.
func (tracker *Tracker) FireReminder() {
	tracker.mu.Lock()
	due := tracker.composeReminderLocked()
	tracker.mu.Unlock()

	tracker.deliver(due)
}

// SetReminderMinutes updates the reminder cadence.
func (tracker *Tracker) SetReminderMinutes(minutes int) {
	tracker.updateSettings(func(settings *model.Settings) {
		settings.ReminderMinutes = model.ClampReminderMinutes(minutes)
	})
}

// SetDailyGoalMinutes updates the daily goal.
func (tracker *Tracker) SetDailyGoalMinutes(minutes int) {
	tracker.updateSettings(func(settings *model.Settings) {
		settings.DailyGoalMinutes = model.ClampDailyGoalMinutes(minutes)
	})
}

// SetSilentReminders toggles notifications instead of blocking prompts.
func (tracker *Tracker) SetSilentReminders(silent bool) {
	tracker.updateSettings(func(settings *model.Settings) {
		settings.SilentReminders = silent
	})
}

// SetWorkingMessage updates the banner shown while working.
func (tracker *Tracker) SetWorkingMessage(message string) {
	tracker.updateSettings(func(settings *model.Settings) {
		settings.WorkingMessage = message
	})
}

// SetBreakMessage updates the banner shown while idle.
func (tracker *Tracker) SetBreakMessage(message string) {
	tracker.updateSettings(func(settings *model.Settings) {
		settings.BreakMessage = message
	})
}

// State returns the current working state.
func (tracker *Tracker) State() State {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.state
}

// Elapsed returns the working time accrued since the last save.
func (tracker *Tracker) Elapsed() time.Duration {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.elapsed
}

// SinceReminder returns the working time accrued since the last reminder.
func (tracker *Tracker) SinceReminder() time.Duration {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.sinceReminder
}

// Settings returns the current settings.
func (tracker *Tracker) Settings() model.Settings {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.settings
}

// Entries returns the session log, newest first.
func (tracker *Tracker) Entries() []string {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return append([]string(nil), tracker.entries...)
}

// GoalProgress returns elapsed time over the daily goal, clamped to [0,1].
func (tracker *Tracker) GoalProgress() float64 {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.goalProgressLocked()
}

// StatusMessage returns the banner text for the current state.
func (tracker *Tracker) StatusMessage() string {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if tracker.state == StateWorking {
		return tracker.settings.WorkingMessage
	}
	return tracker.settings.BreakMessage
}

func (tracker *Tracker) run(stopCh <-chan struct{}) {
	ticker := time.NewTicker(tracker.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			tracker.TickAt(tracker.options.Now())
		}
	}
}

func (tracker *Tracker) advanceLocked(delta time.Duration) (reminder, bool) {
	if delta < 0 {
		delta = 0
	}
	tracker.elapsed += delta
	tracker.sinceReminder += delta

	tracker.emitLocked(Event{
		Type:     EventProgress,
		State:    tracker.state,
		Elapsed:  tracker.elapsed,
		Progress: tracker.goalProgressLocked(),
		At:       tracker.options.Now(),
	})

	if tracker.sinceReminder < tracker.settings.ReminderInterval() {
		return reminder{}, false
	}
	tracker.sinceReminder = 0
	return tracker.composeReminderLocked(), true
}

func (tracker *Tracker) composeReminderLocked() reminder {
	due := reminder{
		silent:  tracker.settings.SilentReminders,
		minutes: tracker.settings.ReminderMinutes,
		message: motivationalMessages[tracker.options.Rand.IntN(len(motivationalMessages))],
	}
	tracker.emitLocked(Event{
		Type:    EventReminder,
		State:   tracker.state,
		Elapsed: tracker.elapsed,
		Message: due.message,
		At:      tracker.options.Now(),
	})
	return due
}

// deliver must be called without the lock held; prompts may block.
func (tracker *Tracker) deliver(due reminder) {
	if due.silent {
		tracker.options.Prompter.TransientNotify(fmt.Sprintf("Break time! %s", due.message))
		return
	}
	tracker.options.Prompter.BlockingPrompt(reminderTitle,
		fmt.Sprintf("You've been working for %d minutes. %s", due.minutes, due.message))
}

func (tracker *Tracker) saveLocked() error {
	now := tracker.options.Now()
	if tracker.elapsed <= sessionNoiseThreshold {
		tracker.emitLocked(Event{
			Type:    EventSessionDiscarded,
			State:   tracker.state,
			Elapsed: tracker.elapsed,
			At:      now,
		})
		return nil
	}

	entry := FormatEntry(now, tracker.elapsed)
	tracker.entries = append([]string{entry}, tracker.entries...)

	if tracker.options.Log != nil {
		if err := tracker.options.Log.Append(entry); err != nil {
			tracker.emitLocked(Event{
				Type:    EventSaveFailed,
				State:   tracker.state,
				Elapsed: tracker.elapsed,
				Message: err.Error(),
				Entry:   entry,
				At:      now,
			})
			return fmt.Errorf("append session log: %w", err)
		}
	}

	tracker.options.Logger.Debug("session saved", "entry", entry)
	tracker.elapsed = 0
	tracker.emitLocked(Event{
		Type:  EventSessionSaved,
		State: tracker.state,
		Entry: entry,
		At:    now,
	})
	return nil
}

func (tracker *Tracker) updateSettings(mutate func(*model.Settings)) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	updated := tracker.settings
	mutate(&updated)
	if updated == tracker.settings {
		return
	}
	tracker.settings = updated

	if tracker.options.Settings != nil {
		if err := tracker.options.Settings.Save(updated); err != nil {
			tracker.options.Logger.Warn("save settings", "error", err)
		}
	}
	tracker.emitLocked(Event{
		Type:     EventSettingsChange,
		State:    tracker.state,
		Elapsed:  tracker.elapsed,
		Progress: tracker.goalProgressLocked(),
		At:       tracker.options.Now(),
	})
}

func (tracker *Tracker) goalProgressLocked() float64 {
	goal := tracker.settings.DailyGoal()
	if goal <= 0 {
		return 1
	}
	progress := float64(tracker.elapsed) / float64(goal)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (tracker *Tracker) emitStateLocked() {
	tracker.emitLocked(Event{
		Type:     EventStateChange,
		State:    tracker.state,
		Elapsed:  tracker.elapsed,
		Progress: tracker.goalProgressLocked(),
		At:       tracker.options.Now(),
	})
}

func (tracker *Tracker) emitLocked(event Event) {
	for _, ch := range tracker.events {
		select {
		case ch <- event:
		default:
		}
	}
}

type nopPrompter struct{}

func (nopPrompter) BlockingPrompt(string, string) {}

func (nopPrompter) TransientNotify(string) {}

func (nopPrompter) Confirm(_, _ string, onResult func(bool)) {
	onResult(false)
}
