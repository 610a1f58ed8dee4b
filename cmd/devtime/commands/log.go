package commands

import (
	"fmt"

	"devtime/internal/core/model"
	"devtime/internal/core/tracker"

	"github.com/spf13/cobra"
)

var logLimit int

// NewLogCommand creates the log command
func NewLogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print recorded sessions, newest first",
		Args:  cobra.NoArgs,
		RunE:  runLog,
	}

	cmd.Flags().IntVarP(&logLimit, "limit", "n", 0, "Show at most this many sessions (0 for all)")

	return cmd
}

func runLog(cmd *cobra.Command, args []string) error {
	newLogger(cmd.ErrOrStderr())

	sessionLog, err := openSessionLog()
	if err != nil {
		return fmt.Errorf("failed to resolve session log: %w", err)
	}

	keeper := tracker.New(model.DefaultSettings(), tracker.Options{Log: sessionLog})
	if err := keeper.LoadLog(); err != nil {
		return err
	}

	entries := keeper.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded yet")
		return nil
	}
	if logLimit > 0 && logLimit < len(entries) {
		entries = entries[:logLimit]
	}
	for _, entry := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", entry)
	}
	return nil
}
