// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.Format(time.RFC3339Nano))
}

// ClockTime is a time of day expressed in minutes since midnight,
// independent of any particular date.
type ClockTime int

// ClockTimeOf extracts the time of day from t.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime(t.Hour()*60 + t.Minute())
}

// NewClockTime constructs a ClockTime from an hour and minute.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Window is a daily time window. A window whose start is not before its end
// wraps past midnight.
type Window struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// Contains reports whether t falls inside the window. The start is
// inclusive and the end exclusive, and wrap-around windows such as
// 22:00-03:00 are handled.
func (w Window) Contains(t ClockTime) bool {
	if w.Start < w.End {
		return t >= w.Start && t < w.End
	}

	return t >= w.Start || t < w.End
}

// InAnyWindow reports whether t falls inside at least one of the windows.
func InAnyWindow(windows []Window, t ClockTime) bool {
	for _, w := range windows {
		if w.Contains(t) {
			return true
		}
	}

	return false
}

// FormatSigned renders a signed seconds value as HH:MM:SS, with a leading
// minus sign when negative. Overrun is rendered, not clamped.
func FormatSigned(seconds int) string {
	prefix := ""
	if seconds < 0 {
		prefix = "-"
		seconds = -seconds
	}

	return fmt.Sprintf(
		"%s%02d:%02d:%02d",
		prefix,
		seconds/3600,
		(seconds%3600)/60,
		seconds%60,
	)
}
