// Package remote defines the shared state document one kiosk station mirrors
// to the fleet controller, the operator command protocol it carries, and the
// arbitration rules that keep replayed or stale documents from corrupting
// local state.
package remote

import (
	"time"

	"github.com/Make-USA-LLC/floortrack/internal/models"
	"github.com/Make-USA-LLC/floortrack/internal/session"
)

// Document is the flat field map stored per station identity. The remote
// store has last-writer-wins semantics; there is no schema enforcement
// beyond these field names.
type Document map[string]any

// Field names of the shared document.
const (
	FieldIsPaused         = "isPaused"
	FieldSecondsRemaining = "secondsRemaining"
	FieldOriginalSeconds  = "originalSeconds"
	FieldTimerText        = "timerText"
	FieldWorkerCount      = "workerCount"
	FieldActiveWorkers    = "activeWorkers"
	FieldCompanyName      = "companyName"
	FieldProjectName      = "projectName"
	FieldLeaderName       = "lineLeaderName"
	FieldCategory         = "category"
	FieldProjectSize      = "projectSize"
	FieldBonusCancelled   = "bonusCancelled"
	FieldFinished         = "isFinished"
	FieldScanHistory      = "scanHistory"
	FieldProjectEvents    = "projectEvents"
	FieldWorkerNames      = "workerNames"
	FieldRemoteCommand    = "remoteCommand"
	FieldCommandTimestamp = "commandTimestamp"
)

// String reads a string field from the document.
func String(doc Document, key string) (string, bool) {
	s, ok := doc[key].(string)
	return s, ok
}

// Int reads an integer field. Numbers decoded from JSON arrive as float64,
// so both forms are accepted.
func Int(doc Document, key string) (int, bool) {
	switch n := doc[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// Bool reads a boolean field from the document.
func Bool(doc Document, key string) (bool, bool) {
	b, ok := doc[key].(bool)
	return b, ok
}

// Time reads a timestamp field, accepting both time.Time values and
// RFC3339 strings.
func Time(doc Document, key string) (time.Time, bool) {
	switch v := doc[key].(type) {
	case time.Time:
		return v, true
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, false
		}

		return t, true
	default:
		return time.Time{}, false
	}
}

// Strings reads a string-array field from the document.
func Strings(doc Document, key string) ([]string, bool) {
	switch v := doc[key].(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))

		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}

			out = append(out, s)
		}

		return out, true
	default:
		return nil, false
	}
}

// StringMap reads a string-to-string map field from the document.
func StringMap(doc Document, key string) (map[string]string, bool) {
	switch v := doc[key].(type) {
	case map[string]string:
		return v, true
	case map[string]any:
		out := make(map[string]string, len(v))

		for k, e := range v {
			s, ok := e.(string)
			if !ok {
				continue
			}

			out[k] = s
		}

		return out, true
	default:
		return nil, false
	}
}

// ScanEvents decodes the scan history carried on the document. Entries that
// do not decode are skipped rather than failing the whole array.
func ScanEvents(doc Document, key string) []session.ScanEvent {
	entries, ok := doc[key].([]any)
	if !ok {
		return nil
	}

	var events []session.ScanEvent

	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}

		entry := Document(m)

		cardID, ok := String(entry, "cardID")
		if !ok {
			continue
		}

		action, ok := String(entry, "action")
		if !ok {
			continue
		}

		stamp, ok := Time(entry, "timestamp")
		if !ok {
			continue
		}

		switch session.ScanAction(action) {
		case session.ClockIn, session.ClockOut:
		default:
			continue
		}

		events = append(events, session.ScanEvent{
			CardID:    cardID,
			Timestamp: stamp,
			Action:    session.ScanAction(action),
		})
	}

	return events
}

// ProjectEvents decodes the project event log carried on the document.
func ProjectEvents(doc Document, key string) []session.ProjectEvent {
	entries, ok := doc[key].([]any)
	if !ok {
		return nil
	}

	var events []session.ProjectEvent

	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}

		entry := Document(m)

		typ, ok := String(entry, "type")
		if !ok {
			continue
		}

		stamp, ok := Time(entry, "timestamp")
		if !ok {
			continue
		}

		value, _ := String(entry, "value")

		events = append(events, session.ProjectEvent{
			Timestamp: stamp,
			Type:      session.ProjectEventType(typ),
			Value:     value,
		})
	}

	return events
}

// BuildState encodes the outbound mirror of a session snapshot. The result
// carries every field a controller needs to render the station and to issue
// follow-up commands.
func BuildState(snap *models.Snapshot, timerText string, activeIDs []string) Document {
	scans := make([]any, 0, len(snap.Log.Scans))
	for _, ev := range snap.Log.Scans {
		scans = append(scans, map[string]any{
			"cardID":    ev.CardID,
			"action":    string(ev.Action),
			"timestamp": ev.Timestamp.Format(time.RFC3339Nano),
		})
	}

	events := make([]any, 0, len(snap.Log.Events))
	for _, ev := range snap.Log.Events {
		entry := map[string]any{
			"type":      string(ev.Type),
			"timestamp": ev.Timestamp.Format(time.RFC3339Nano),
		}
		if ev.Value != "" {
			entry["value"] = ev.Value
		}

		events = append(events, entry)
	}

	return Document{
		FieldIsPaused:         snap.Pause.Paused(),
		FieldSecondsRemaining: snap.CountdownSeconds,
		FieldOriginalSeconds:  snap.OriginalSeconds,
		FieldTimerText:        timerText,
		FieldWorkerCount:      len(activeIDs),
		FieldActiveWorkers:    activeIDs,
		FieldCompanyName:      snap.Meta.Company,
		FieldProjectName:      snap.Meta.Project,
		FieldLeaderName:       snap.Meta.Leader,
		FieldCategory:         snap.Meta.Category,
		FieldProjectSize:      snap.Meta.Size,
		FieldBonusCancelled:   !snap.Bonus.Eligible,
		FieldFinished:         snap.Finished,
		FieldScanHistory:      scans,
		FieldProjectEvents:    events,
	}
}
