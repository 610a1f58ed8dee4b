package panel

import (
	"fmt"
	"log/slog"

	"devtime/internal/core/model"
	"devtime/internal/core/tracker"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window renders the tracker state and accepts configuration edits.
type Window struct {
	window  fyne.Window
	tracker *tracker.Tracker
	logger  *slog.Logger
	entries []string

	sessionLabel   *widget.Label
	goalLabel      *widget.Label
	progress       *widget.ProgressBar
	reminderSlider *widget.Slider
	reminderValue  *widget.Label
	goalSlider     *widget.Slider
	goalValue      *widget.Label
	silent         *widget.Check
	workingEntry   *widget.Entry
	breakEntry     *widget.Entry
	toggleButton   *widget.Button
	resetButton    *widget.Button
	banner         *widget.Label
	logList        *widget.List
}

// New builds the tracker window into window.
func New(window fyne.Window, keeper *tracker.Tracker, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	settings := keeper.Settings()

	panel := &Window{
		window:  window,
		tracker: keeper,
		logger:  logger,
	}

	panel.sessionLabel = widget.NewLabel("")
	panel.goalLabel = widget.NewLabel("")

	panel.progress = widget.NewProgressBar()
	panel.progress.TextFormatter = func() string {
		return fmt.Sprintf("%d%% of daily goal", int(panel.progress.Value*100))
	}

	panel.reminderValue = widget.NewLabel("")
	panel.reminderSlider = widget.NewSlider(model.MinReminderMinutes, model.MaxReminderMinutes)
	panel.reminderSlider.Step = 1
	panel.reminderSlider.Value = float64(settings.ReminderMinutes)
	panel.reminderSlider.OnChanged = func(value float64) {
		keeper.SetReminderMinutes(int(value))
		panel.Refresh()
	}

	panel.goalValue = widget.NewLabel("")
	panel.goalSlider = widget.NewSlider(model.MinDailyGoalMinutes, model.MaxDailyGoalMinutes)
	panel.goalSlider.Step = 1
	panel.goalSlider.Value = float64(settings.DailyGoalMinutes)
	panel.goalSlider.OnChanged = func(value float64) {
		keeper.SetDailyGoalMinutes(int(value))
		panel.Refresh()
	}

	panel.silent = widget.NewCheck("Use silent reminders (no popup)", func(checked bool) {
		keeper.SetSilentReminders(checked)
	})
	panel.silent.SetChecked(settings.SilentReminders)

	panel.workingEntry = widget.NewEntry()
	panel.workingEntry.SetText(settings.WorkingMessage)
	panel.workingEntry.OnChanged = func(text string) {
		keeper.SetWorkingMessage(text)
		panel.Refresh()
	}

	panel.breakEntry = widget.NewEntry()
	panel.breakEntry.SetText(settings.BreakMessage)
	panel.breakEntry.OnChanged = func(text string) {
		keeper.SetBreakMessage(text)
		panel.Refresh()
	}

	panel.toggleButton = widget.NewButton("Start Work", panel.toggleWork)
	panel.resetButton = widget.NewButton("Reset Session", keeper.ResetSession)

	panel.banner = widget.NewLabel("")
	panel.banner.Wrapping = fyne.TextWrapWord

	panel.logList = widget.NewList(
		func() int {
			return len(panel.entries)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.ListItemID, object fyne.CanvasObject) {
			if id < 0 || id >= len(panel.entries) {
				return
			}
			object.(*widget.Label).SetText("- " + panel.entries[id])
		},
	)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Developer Time Tracker", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Session Time:"), panel.sessionLabel),
		container.NewHBox(widget.NewLabel("Daily Goal:"), panel.goalLabel),
		panel.progress,
		widget.NewSeparator(),
		container.NewBorder(nil, nil, widget.NewLabel("Break reminder every (minutes):"), panel.reminderValue, panel.reminderSlider),
		container.NewBorder(nil, nil, widget.NewLabel("Daily Goal (minutes):"), panel.goalValue, panel.goalSlider),
		panel.silent,
		container.NewBorder(nil, nil, widget.NewLabel("Working Message:"), nil, panel.workingEntry),
		container.NewBorder(nil, nil, widget.NewLabel("Break Message:"), nil, panel.breakEntry),
		container.NewHBox(panel.toggleButton, layout.NewSpacer(), panel.resetButton),
		panel.banner,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Session Logs", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)

	window.SetContent(container.NewBorder(form, nil, nil, nil, panel.logList))
	window.Resize(fyne.NewSize(480, 640))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	panel.Refresh()
	return panel
}

// Show displays the tracker window.
func (panel *Window) Show() {
	panel.window.Show()
	panel.window.RequestFocus()
}

// Window returns the underlying Fyne window.
func (panel *Window) Window() fyne.Window {
	return panel.window
}

// HandleEvent refreshes the window for a tracker event.
// It must run on the Fyne main goroutine.
func (panel *Window) HandleEvent(event tracker.Event) {
	if event.Type == tracker.EventSaveFailed {
		dialog.ShowError(fmt.Errorf("session could not be saved: %s", event.Message), panel.window)
	}
	panel.Refresh()
}

// Refresh pulls the current tracker state into the widgets.
func (panel *Window) Refresh() {
	settings := panel.tracker.Settings()
	elapsed := panel.tracker.Elapsed()
	working := panel.tracker.State() == tracker.StateWorking

	panel.sessionLabel.SetText(tracker.FormatDuration(elapsed))
	panel.goalLabel.SetText(tracker.FormatDuration(settings.DailyGoal()))
	panel.progress.SetValue(panel.tracker.GoalProgress())
	panel.reminderValue.SetText(fmt.Sprintf("%d", settings.ReminderMinutes))
	panel.goalValue.SetText(fmt.Sprintf("%d", settings.DailyGoalMinutes))

	if working {
		panel.toggleButton.SetText("Pause Work")
		panel.banner.Importance = widget.SuccessImportance
	} else {
		panel.toggleButton.SetText("Start Work")
		panel.banner.Importance = widget.WarningImportance
	}
	panel.banner.SetText(panel.tracker.StatusMessage())

	panel.entries = panel.tracker.Entries()
	panel.logList.Refresh()
}

func (panel *Window) toggleWork() {
	if panel.tracker.State() == tracker.StateWorking {
		if err := panel.tracker.PauseWork(); err != nil {
			panel.logger.Error("pause work", "error", err)
		}
	} else {
		panel.tracker.StartWork()
	}
	panel.Refresh()
}
