package tracker

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Make-USA-LLC/floortrack/internal/models"
	"github.com/Make-USA-LLC/floortrack/internal/session"
	"github.com/Make-USA-LLC/floortrack/remote"
)

func commandDoc(raw string, stamp time.Time) remote.Document {
	return remote.Document{
		remote.FieldRemoteCommand:    raw,
		remote.FieldCommandTimestamp: stamp.Format(time.RFC3339Nano),
	}
}

func TestAdoptRemoteSession(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.now = func() time.Time { return baseTime }

	tr.handleSnapshot(remote.Document{
		remote.FieldSecondsRemaining: 600,
		remote.FieldOriginalSeconds:  1200,
		remote.FieldActiveWorkers:    []string{"04A1", "07C2"},
		remote.FieldCompanyName:      "Brightline Mfg",
		remote.FieldProjectName:      "Conveyor Retrofit",
	})

	if tr.countdown != 600 || tr.original != 1200 {
		t.Errorf("budget = %d/%d, want 600/1200", tr.countdown, tr.original)
	}

	// adopted sessions come up paused; the operator resumes deliberately
	if tr.pause.Kind != session.ManualPause {
		t.Errorf("pause = %q, want manual", tr.pause.Kind)
	}

	if got := tr.ledger.Headcount(); got != 2 {
		t.Errorf("headcount = %d, want 2", got)
	}

	want := models.ProjectMeta{Company: "Brightline Mfg", Project: "Conveyor Retrofit"}
	if diff := cmp.Diff(want, tr.meta); diff != "" {
		t.Errorf("meta mismatch (-want +got):\n%s", diff)
	}
}

func TestAdoptionSkippedWhenSessionExists(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.now = func() time.Time { return baseTime }

	tr.startSeconds(900, baseTime)

	tr.handleSnapshot(remote.Document{
		remote.FieldSecondsRemaining: 600,
		remote.FieldActiveWorkers:    []string{"04A1"},
	})

	if tr.countdown != 900 {
		t.Errorf("countdown = %d, want 900", tr.countdown)
	}

	if got := tr.ledger.Headcount(); got != 0 {
		t.Errorf("headcount = %d, want 0", got)
	}
}

func TestMergeLogsOnlyIntoEmptyLocal(t *testing.T) {
	history := []any{
		map[string]any{
			"cardID":    "04A1",
			"action":    string(session.ClockIn),
			"timestamp": baseTime.Format(time.RFC3339Nano),
		},
		map[string]any{
			"cardID":    "04A1",
			"action":    string(session.ClockOut),
			"timestamp": baseTime.Add(20 * time.Minute).Format(time.RFC3339Nano),
		},
	}

	t.Run("empty local log adopts", func(t *testing.T) {
		tr, _ := newTestTracker(t)
		tr.now = func() time.Time { return baseTime }
		tr.startSeconds(600, baseTime)

		tr.handleSnapshot(remote.Document{remote.FieldScanHistory: history})

		if got := tr.journal.ScanCount(); got != 2 {
			t.Fatalf("journal scans = %d, want 2", got)
		}

		if got := tr.ledger.TotalMinutes("04A1"); got != 20 {
			t.Errorf("replayed minutes = %v, want 20", got)
		}
	})

	t.Run("populated local log is authoritative", func(t *testing.T) {
		tr, _ := newTestTracker(t)
		tr.now = func() time.Time { return baseTime }
		tr.startSeconds(600, baseTime)
		tr.scan("07C2", baseTime)

		tr.handleSnapshot(remote.Document{remote.FieldScanHistory: history})

		if got := tr.journal.ScanCount(); got != 1 {
			t.Errorf("journal scans = %d, want 1", got)
		}

		if tr.ledger.Exists("04A1") {
			t.Error("remote history replayed over local log")
		}
	})
}

func TestCommandReplayIsIdempotent(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.now = func() time.Time { return baseTime }

	tr.startSeconds(600, baseTime)

	doc := commandDoc("TOGGLE", baseTime)

	tr.handleSnapshot(doc)

	if tr.pause.Kind != session.ManualPause {
		t.Fatalf("pause after TOGGLE = %q, want manual", tr.pause.Kind)
	}

	// the identical document arrives again: the toggle must not flip back
	tr.handleSnapshot(doc)

	if tr.pause.Kind != session.ManualPause {
		t.Fatalf("replayed TOGGLE flipped the pause state")
	}

	tr.handleSnapshot(commandDoc("TOGGLE", baseTime.Add(time.Second)))

	if tr.pause.Kind != session.Running {
		t.Errorf("pause after newer TOGGLE = %q, want running", tr.pause.Kind)
	}
}

func TestStaleStartupCommandIgnored(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.now = func() time.Time { return baseTime }

	tr.startSeconds(600, baseTime)

	// a command written hours before this process started must not execute
	tr.handleSnapshot(commandDoc("FINISH", baseTime.Add(-3*time.Hour)))

	if tr.finished {
		t.Error("stale startup command executed")
	}
}

func TestDispatchSetTimeAndReset(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.now = func() time.Time { return baseTime }

	tr.handleSnapshot(commandDoc("SET_TIME|0:10:00", baseTime))

	if tr.countdown != 600 || !tr.countingDown {
		t.Fatalf(
			"countdown = %d (counting %v), want 600 running",
			tr.countdown, tr.countingDown,
		)
	}

	tr.handleSnapshot(commandDoc("RESET", baseTime.Add(time.Second)))

	if tr.countdown != 0 || tr.countingDown {
		t.Errorf(
			"countdown after RESET = %d (counting %v), want 0 idle",
			tr.countdown, tr.countingDown,
		)
	}
}

func TestDispatchWorkerCommands(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.now = func() time.Time { return baseTime.Add(15 * time.Minute) }

	tr.startSeconds(600, baseTime)
	tr.scan("04A1", baseTime)

	tr.handleSnapshot(commandDoc("CLOCK_OUT|04A1", baseTime.Add(15*time.Minute)))

	if tr.ledger.Active("04A1") {
		t.Fatal("remote clock-out ignored")
	}

	if got := tr.ledger.TotalMinutes("04A1"); got != 15 {
		t.Errorf("accrued minutes = %v, want 15", got)
	}

	tr.handleSnapshot(commandDoc("EDIT_WORKER|04A1|90.5", baseTime.Add(16*time.Minute)))

	if got := tr.ledger.TotalMinutes("04A1"); got != 90.5 {
		t.Errorf("edited minutes = %v, want 90.5", got)
	}

	if tr.bonus.Eligible {
		t.Error("remote hours edit did not void the bonus")
	}
}

func TestDispatchMalformedCommandIgnored(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.now = func() time.Time { return baseTime }

	tr.startSeconds(600, baseTime)

	cases := []string{
		"PRELOAD",
		"PRELOAD|ten minutes",
		"EDIT_WORKER|04A1",
		"BOGUS_ACTION",
	}

	for i, raw := range cases {
		tr.handleSnapshot(commandDoc(raw, baseTime.Add(time.Duration(i)*time.Second)))
	}

	if tr.countdown != 600 || tr.pause.Paused() || tr.finished {
		t.Error("malformed command mutated session state")
	}
}

func TestPreloadStagesWithoutStarting(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.now = func() time.Time { return baseTime }

	tr.handleSnapshot(commandDoc("PRELOAD|1:00:00", baseTime))

	if tr.countingDown {
		t.Fatal("preload armed the countdown")
	}

	if tr.pendingPreload == nil || tr.pendingPreload.Seconds != 3600 {
		t.Fatalf("staged preload = %+v, want 3600 seconds", tr.pendingPreload)
	}

	tr.startSeconds(tr.pendingPreload.Seconds, baseTime)

	if !tr.countingDown || tr.countdown != 3600 {
		t.Errorf(
			"countdown = %d (counting %v), want 3600 running",
			tr.countdown, tr.countingDown,
		)
	}

	if tr.pendingPreload != nil {
		t.Error("staged preload not cleared on start")
	}
}

func TestWorkerNamesCacheFromRemote(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.now = func() time.Time { return baseTime }

	tr.startSeconds(600, baseTime)
	tr.handleSnapshot(remote.Document{
		remote.FieldWorkerNames: map[string]any{"04A1": "Rosa Vega"},
	})

	if got := tr.workerName("04A1"); got != "Rosa Vega" {
		t.Errorf("worker name = %q, want Rosa Vega", got)
	}

	if got := tr.workerName("07C2"); got != "ID: 07C2" {
		t.Errorf("fallback name = %q, want ID: 07C2", got)
	}
}
