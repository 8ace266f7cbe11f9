package models

import (
	"time"

	"github.com/Make-USA-LLC/floortrack/internal/session"
)

// ProjectMeta describes the job a session is running.
type ProjectMeta struct {
	Company  string `json:"company"`
	Project  string `json:"project"`
	Leader   string `json:"line_leader_name"`
	Category string `json:"category"`
	Size     string `json:"size"`
}

// Empty reports whether the metadata required for queueing is missing.
func (m ProjectMeta) Empty() bool {
	return m.Company == "" || m.Project == ""
}

// BonusState is the one-way bonus-eligibility latch. Once Eligible is false
// it stays false for the remainder of the session.
type BonusState struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

// Status renders the state the reporting backend expects.
func (b BonusState) Status() string {
	if b.Eligible {
		return "unpaid"
	}

	if b.Reason != "" {
		return "cancelled: " + b.Reason
	}

	return "cancelled"
}

// Snapshot is the full persisted form of a session. It round-trips through
// the local store and mirrors the field set pushed to the remote document.
type Snapshot struct {
	CountdownSeconds int                `json:"countdown_seconds"`
	OriginalSeconds  int                `json:"original_seconds"`
	Meta             ProjectMeta        `json:"meta"`
	Pause            session.PauseState `json:"pause_state"`
	CountingDown     bool               `json:"is_counting_down"`
	Finished         bool               `json:"is_finished"`
	HasUsedLunch     bool               `json:"has_used_lunch_break"`
	LunchStart       time.Time          `json:"lunch_break_start_time,omitzero"`
	BuzzerPlayed     bool               `json:"has_played_buzzer_at_zero"`
	Bonus            BonusState         `json:"bonus"`
	Workers          []session.Worker   `json:"workers"`
	Log              session.Log        `json:"log"`
}

// QueueItem is a persisted, not-yet-started session snapshot awaiting an
// operator to claim and start it.
type QueueItem struct {
	ID              string      `json:"id,omitempty"`
	Meta            ProjectMeta `json:"meta"`
	Seconds         int         `json:"seconds"`          // remaining budget
	OriginalSeconds int         `json:"original_seconds"` // total budget
	CreatedAt       time.Time   `json:"created_at"`
	Log             session.Log `json:"log"`
}

// WorkerReport is one line of the final report.
type WorkerReport struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Minutes float64 `json:"minutes"`
}

// Report is the frozen record pushed when a session finishes.
type Report struct {
	Meta        ProjectMeta    `json:"meta"`
	Workers     []WorkerReport `json:"worker_log"`
	CompletedAt time.Time      `json:"completed_at"`
	BonusStatus string         `json:"bonus_status"`
}
