package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"devtime/internal/core/tracker"
	"devtime/internal/platform"
	"devtime/internal/ui/notify"
	"devtime/internal/ui/panel"
	"devtime/internal/ui/tray"
	"devtime/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
)

const windowTitle = "Dev Time Tracker"

func runTracker(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr())

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("tracker already running, raised existing window")
			return nil
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	settingsStore, err := openSettingsStore()
	if err != nil {
		return fmt.Errorf("failed to resolve settings: %w", err)
	}
	sessionLog, err := openSessionLog()
	if err != nil {
		return fmt.Errorf("failed to resolve session log: %w", err)
	}

	settings, err := settingsStore.Load()
	if err != nil {
		logger.Warn("load settings, using defaults", "path", settingsStore.Path(), "error", err)
	}

	fyneApp := app.NewWithID("com.devtime.tracker")
	fyneApp.SetIcon(resources.MustIcon(resources.IconActive))

	trackerWindow := fyneApp.NewWindow(windowTitle)
	keeper := tracker.New(settings, tracker.Options{
		Log:          sessionLog,
		Settings:     settingsStore,
		Prompter:     notify.New(fyneApp, trackerWindow, windowTitle),
		TickInterval: tickInterval,
		Logger:       logger,
	})
	if err := keeper.LoadLog(); err != nil {
		logger.Warn("load session log", "path", sessionLog.Path(), "error", err)
	}

	trackerPanel := panel.New(trackerWindow, keeper, logger)
	guard.OnActivate(func() {
		fyne.Do(trackerPanel.Show)
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Icons{
			Working: resources.MustIcon(resources.IconActive),
			Idle:    resources.MustIcon(resources.IconIdle),
		}, tray.Callbacks{
			OnShow: trackerPanel.Show,
			OnToggleWork: func() {
				toggleWork(keeper, logger)
			},
			OnReset: func() {
				trackerPanel.Show()
				keeper.ResetSession()
			},
			OnQuit: fyneApp.Quit,
		})
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	events := keeper.Subscribe(16)
	go func() {
		for event := range events {
			fyne.Do(func() {
				trackerPanel.HandleEvent(event)
				if trayManager != nil {
					trayManager.HandleEvent(event)
				}
			})
		}
	}()

	fyneApp.Lifecycle().SetOnStopped(func() {
		if err := keeper.Close(); err != nil {
			logger.Error("flush session on exit", "error", err)
		}
	})

	logger.Debug("tracker starting",
		"log", sessionLog.Path(),
		"settings", settingsStore.Path(),
		"tick", tickInterval)

	keeper.Start()
	trackerPanel.Show()
	fyneApp.Run()
	return nil
}

func toggleWork(keeper *tracker.Tracker, logger *slog.Logger) {
	if keeper.State() == tracker.StateWorking {
		if err := keeper.PauseWork(); err != nil {
			logger.Error("pause work", "error", err)
		}
		return
	}
	keeper.StartWork()
}
