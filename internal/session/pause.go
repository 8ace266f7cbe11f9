package session

import "encoding/json"

// PauseKind enumerates the reasons the countdown is not draining. Exactly
// one is active at any time; only Running permits drain.
type PauseKind string

const (
	Running     PauseKind = "running"
	ManualPause PauseKind = "manual"
	ManualLunch PauseKind = "manual_lunch"
	AutoLunch   PauseKind = "auto_lunch"
	QCCrew      PauseKind = "qc_crew"
	QCComponent PauseKind = "qc_component"
	Technician  PauseKind = "technician"
)

// PauseState is the authoritative "why is the clock not draining" state.
// The Line field is only meaningful for Technician holds, which tag the
// machine line the hold refers to. Keeping the kind and its context in one
// value means they cannot drift apart.
type PauseState struct {
	Kind PauseKind `json:"kind"`
	Line string    `json:"line,omitempty"`
}

// PauseRunning is the state in which the countdown drains.
func PauseRunning() PauseState {
	return PauseState{Kind: Running}
}

// TechnicianHold returns a technician pause tagged with a machine line.
func TechnicianHold(line string) PauseState {
	return PauseState{Kind: Technician, Line: line}
}

// Paused reports whether the state freezes the countdown.
func (p PauseState) Paused() bool {
	return p.Kind != Running
}

// CredentialGated reports whether the state can only be exited through the
// same code used to enter it. A generic resume is rejected for these.
func (p PauseState) CredentialGated() bool {
	switch p.Kind {
	case QCCrew, QCComponent, Technician:
		return true
	default:
		return false
	}
}

// Lunch reports whether the state is either lunch variant.
func (p PauseState) Lunch() bool {
	return p.Kind == ManualLunch || p.Kind == AutoLunch
}

// EventType maps a pause state to the project event logged on entry.
func (p PauseState) EventType() ProjectEventType {
	switch p.Kind {
	case ManualPause:
		return EventPause
	case ManualLunch, AutoLunch:
		return EventLunch
	case QCCrew:
		return EventQCCrew
	case QCComponent:
		return EventQCComponent
	case Technician:
		return EventTechnician
	default:
		return ""
	}
}

// UnmarshalJSON accepts both the current object form and the bare string
// kinds written by earlier releases.
func (p *PauseState) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = PauseState{Kind: PauseKind(s)}
		return nil
	}

	type alias PauseState

	var a alias

	err := json.Unmarshal(b, &a)
	if err != nil {
		return err
	}

	*p = PauseState(a)

	return nil
}
