package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"devtime/internal/storage"

	"github.com/spf13/cobra"
)

const appName = "DevTimeTracker"

var (
	debugMode    bool
	logFile      string
	settingsFile string
	tickInterval time.Duration
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "devtime",
		Short:        "Track working time and get break reminders",
		Long:         `devtime tracks working sessions from a desktop window and tray icon, reminds you to take breaks, and keeps a plain-text log of completed sessions.`,
		RunE:         runTracker,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Session log file (default: <config dir>/"+appName+"/DevTimeLog.txt)")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings-file", "", "Settings file (default: <config dir>/"+appName+"/settings.yaml)")
	rootCmd.Flags().DurationVar(&tickInterval, "tick", time.Second, "How often the session clock is refreshed")

	rootCmd.AddCommand(NewLogCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(out io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func openSessionLog() (*storage.SessionLog, error) {
	path := logFile
	if path == "" {
		resolved, err := storage.DefaultLogPath(appName)
		if err != nil {
			return nil, err
		}
		path = resolved
	}
	return storage.NewSessionLog(path), nil
}

func openSettingsStore() (*storage.SettingsStore, error) {
	path := settingsFile
	if path == "" {
		resolved, err := storage.DefaultSettingsPath(appName)
		if err != nil {
			return nil, err
		}
		path = resolved
	}
	return storage.NewSettingsStore(path), nil
}
