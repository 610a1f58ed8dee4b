package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		input time.Duration
		want  string
	}{
		{0, "00:00:00"},
		{999 * time.Millisecond, "00:00:00"},
		{90 * time.Second, "00:01:30"},
		{25 * time.Minute, "00:25:00"},
		{4*time.Hour + 5*time.Minute + 6*time.Second, "04:05:06"},
		{26 * time.Hour, "26:00:00"},
		{-time.Minute, "00:00:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDuration(tc.input), "input %s", tc.input)
	}
}

func TestFormatEntry(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)

	assert.Equal(t, "[2026-01-02 03:04:05] - 01:00:01", FormatEntry(at, time.Hour+time.Second))
}
