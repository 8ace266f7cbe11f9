// Package session defines the work-session domain: scan and project events,
// the worker ledger, pause states, and the feedback values operations return.
package session

import "time"

// ScanAction is the action taken when a card is scanned.
type ScanAction string

const (
	ClockIn  ScanAction = "Clocked In"
	ClockOut ScanAction = "Clocked Out"
)

// ScanEvent records a single card scan. Events are immutable once appended.
type ScanEvent struct {
	CardID    string     `json:"card_id"`
	Timestamp time.Time  `json:"timestamp"`
	Action    ScanAction `json:"action"`
}

// ProjectEventType classifies project-level audit events.
type ProjectEventType string

const (
	EventPause       ProjectEventType = "Pause"
	EventLunch       ProjectEventType = "Lunch"
	EventSave        ProjectEventType = "Saved"
	EventQCCrew      ProjectEventType = "QC (Crew)"
	EventQCComponent ProjectEventType = "QC (Component)"
	EventTechnician  ProjectEventType = "Technician"
)

// ProjectEvent records a project-level occurrence. Value carries free text
// context, such as the machine line a technician hold refers to.
type ProjectEvent struct {
	Timestamp time.Time        `json:"timestamp"`
	Type      ProjectEventType `json:"type"`
	Value     string           `json:"value,omitempty"`
}
