package tray

import (
	"fmt"
	"time"

	"devtime/internal/core/tracker"

	"fyne.io/fyne/v2"
)

// App is the subset of desktop.App the tray needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow       func()
	OnToggleWork func()
	OnReset      func()
	OnQuit       func()
}

// Icons holds the tray icons for each working state.
type Icons struct {
	Working fyne.Resource
	Idle    fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app        App
	icons      Icons
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	working    bool
	elapsed    time.Duration
}

// New creates a tray manager with the provided callbacks.
func New(app App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		icons:     icons,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("", func() {
		if manager.callbacks.OnToggleWork != nil {
			manager.callbacks.OnToggleWork()
		}
	})

	manager.refreshLabels()
	manager.refreshMenu()
	manager.refreshIcon()
	return manager
}

// HandleEvent updates the tray from a tracker event.
func (manager *Manager) HandleEvent(event tracker.Event) {
	switch event.Type {
	case tracker.EventStateChange:
		manager.elapsed = event.Elapsed
		manager.SetWorking(event.State == tracker.StateWorking)
	case tracker.EventProgress:
		manager.SetElapsed(event.Elapsed)
	case tracker.EventSessionSaved:
		manager.SetElapsed(0)
	}
}

// SetWorking updates the working state, toggle label and icon.
func (manager *Manager) SetWorking(working bool) {
	changed := manager.working != working
	manager.working = working
	manager.refreshLabels()
	manager.refreshMenu()
	if changed {
		manager.refreshIcon()
	}
}

// SetElapsed updates the status line.
func (manager *Manager) SetElapsed(elapsed time.Duration) {
	manager.elapsed = elapsed
	manager.refreshLabels()
	manager.refreshMenu()
}

// StatusLabel returns the current status line.
func (manager *Manager) StatusLabel() string {
	return manager.statusItem.Label
}

// ToggleLabel returns the current start/pause label.
func (manager *Manager) ToggleLabel() string {
	return manager.toggleItem.Label
}

func (manager *Manager) refreshLabels() {
	state := "paused"
	manager.toggleItem.Label = "Start work"
	if manager.working {
		state = "working"
		manager.toggleItem.Label = "Pause work"
	}
	manager.statusItem.Label = fmt.Sprintf("%s (%s)", tracker.FormatDuration(manager.elapsed), state)
}

func (manager *Manager) refreshIcon() {
	if manager.app == nil {
		return
	}
	icon := manager.icons.Idle
	if manager.working {
		icon = manager.icons.Working
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("DevTime",
		manager.statusItem,
		fyne.NewMenuItem("Show tracker", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.toggleItem,
		fyne.NewMenuItem("Reset session", func() {
			if manager.callbacks.OnReset != nil {
				manager.callbacks.OnReset()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
