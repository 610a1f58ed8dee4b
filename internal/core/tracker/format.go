package tracker

import (
	"fmt"
	"time"
)

const entryTimeLayout = "2006-01-02 15:04:05"

// FormatDuration renders a duration as zero-padded HH:MM:SS.
// Hours are not wrapped at 24.
func FormatDuration(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	total := int64(value / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatEntry builds a session log line: "[YYYY-MM-DD HH:MM:SS] - HH:MM:SS".
func FormatEntry(at time.Time, elapsed time.Duration) string {
	return fmt.Sprintf("[%s] - %s", at.Format(entryTimeLayout), FormatDuration(elapsed))
}
