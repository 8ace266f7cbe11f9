package session

import (
	"encoding/json"
	"time"
)

// ClockState models whether a worker is currently clocked in. The zero value
// is clocked out, so "clocked in with no timestamp" is unrepresentable.
type ClockState struct {
	since time.Time
	on    bool
}

// ClockedInAt returns a ClockState opened at the given time.
func ClockedInAt(t time.Time) ClockState {
	return ClockState{since: t, on: true}
}

// On reports whether the worker is clocked in, and since when.
func (c ClockState) On() (time.Time, bool) {
	return c.since, c.on
}

func (c ClockState) MarshalJSON() ([]byte, error) {
	if !c.on {
		return []byte("null"), nil
	}

	return json.Marshal(c.since)
}

func (c *ClockState) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*c = ClockState{}
		return nil
	}

	var t time.Time

	err := json.Unmarshal(b, &t)
	if err != nil {
		return err
	}

	*c = ClockedInAt(t)

	return nil
}

// Worker tracks one card holder's participation in the session. Workers are
// created implicitly on first scan and destroyed when the session resets.
type Worker struct {
	ID           string     `json:"id"`
	Clock        ClockState `json:"clock_in_time"`
	TotalMinutes float64    `json:"total_minutes_worked"`
}
