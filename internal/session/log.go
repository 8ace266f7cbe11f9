package session

import (
	"slices"
	"time"
)

// Log is the append-only record of scan and project events. It is the ground
// truth the worker ledger and the session counters derive from.
type Log struct {
	Scans  []ScanEvent    `json:"scan_history"`
	Events []ProjectEvent `json:"project_events"`
}

// AppendScan records a card scan.
func (l *Log) AppendScan(ev ScanEvent) {
	l.Scans = append(l.Scans, ev)
}

// AppendEvent records a project-level event.
func (l *Log) AppendEvent(ev ProjectEvent) {
	l.Events = append(l.Events, ev)
}

// SortedScans returns the scan history ordered by timestamp. Replay and
// merge can interleave locally- and remotely-sourced events, so insertion
// order is not authoritative.
func (l *Log) SortedScans() []ScanEvent {
	scans := slices.Clone(l.Scans)

	slices.SortStableFunc(scans, func(a, b ScanEvent) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	return scans
}

// EventsOfType filters the project events by type.
func (l *Log) EventsOfType(t ProjectEventType) []ProjectEvent {
	var events []ProjectEvent

	for _, ev := range l.Events {
		if ev.Type == t {
			events = append(events, ev)
		}
	}

	return events
}

// CountEvents reports how many project events of the given type were logged.
func (l *Log) CountEvents(t ProjectEventType) int {
	var n int

	for _, ev := range l.Events {
		if ev.Type == t {
			n++
		}
	}

	return n
}

// ScanCount reports the number of recorded scans.
func (l *Log) ScanCount() int {
	return len(l.Scans)
}

// LastScanFor returns the most recent scan for the given card, if any.
func (l *Log) LastScanFor(cardID string) (ScanEvent, bool) {
	for i := len(l.Scans) - 1; i >= 0; i-- {
		if l.Scans[i].CardID == cardID {
			return l.Scans[i], true
		}
	}

	return ScanEvent{}, false
}

// EventsSince returns the project events logged at or after the given time.
func (l *Log) EventsSince(t time.Time) []ProjectEvent {
	var events []ProjectEvent

	for _, ev := range l.Events {
		if !ev.Timestamp.Before(t) {
			events = append(events, ev)
		}
	}

	return events
}

// Empty reports whether the log holds no events of either kind.
func (l *Log) Empty() bool {
	return len(l.Scans) == 0 && len(l.Events) == 0
}

// Reset discards all events. Only valid at session teardown.
func (l *Log) Reset() {
	l.Scans = nil
	l.Events = nil
}
