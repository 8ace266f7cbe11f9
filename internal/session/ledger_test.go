package session

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var baseTime = time.Date(2025, time.March, 14, 6, 0, 0, 0, time.UTC)

func scan(id string, offset time.Duration, action ScanAction) ScanEvent {
	return ScanEvent{
		CardID:    id,
		Timestamp: baseTime.Add(offset),
		Action:    action,
	}
}

func minutesByWorker(l *Ledger) map[string]float64 {
	m := make(map[string]float64)

	for _, w := range l.Workers() {
		m[w.ID] = w.TotalMinutes
	}

	return m
}

func TestReconstructDeterminism(t *testing.T) {
	events := []ScanEvent{
		scan("04A1", 0, ClockIn),
		scan("09F2", 2*time.Minute, ClockIn),
		scan("04A1", 30*time.Minute, ClockOut),
		scan("04A1", 45*time.Minute, ClockIn),
		scan("09F2", 62*time.Minute, ClockOut),
		scan("04A1", 90*time.Minute, ClockOut),
	}

	first := Reconstruct(events)
	second := Reconstruct(events)

	if diff := cmp.Diff(minutesByWorker(first), minutesByWorker(second)); diff != "" {
		t.Errorf("replaying the same log twice diverged:\n%s", diff)
	}

	if diff := cmp.Diff(first.ActiveIDs(), second.ActiveIDs()); diff != "" {
		t.Errorf("active workers diverged between replays:\n%s", diff)
	}
}

func TestReconstructMatchedPair(t *testing.T) {
	events := []ScanEvent{
		scan("04A1", 0, ClockIn),
		scan("04A1", 75*time.Minute, ClockOut),
	}

	l := Reconstruct(events)

	got := l.TotalMinutes("04A1")
	if got != 75 {
		t.Errorf("expected exactly 75 accrued minutes, but got: %v", got)
	}

	if l.Active("04A1") {
		t.Error("expected worker to be clocked out after the pair")
	}
}

func TestReconstructUnmatchedClockOut(t *testing.T) {
	events := []ScanEvent{
		scan("04A1", 0, ClockOut),
	}

	l := Reconstruct(events)

	if got := l.TotalMinutes("04A1"); got != 0 {
		t.Errorf("expected an unmatched clock-out to accrue nothing, but got: %v", got)
	}

	if l.Headcount() != 0 {
		t.Errorf("expected headcount 0, but got: %d", l.Headcount())
	}
}

func TestReconstructInterleavedWorkers(t *testing.T) {
	events := []ScanEvent{
		scan("04A1", 0, ClockIn),
		scan("09F2", 10*time.Minute, ClockIn),
		scan("04A1", 20*time.Minute, ClockOut),
		scan("09F2", 40*time.Minute, ClockOut),
	}

	l := Reconstruct(events)

	expected := map[string]float64{"04A1": 20, "09F2": 30}

	if diff := cmp.Diff(expected, minutesByWorker(l)); diff != "" {
		t.Errorf("accrued minutes mismatch:\n%s", diff)
	}
}

func TestLedgerClockInIdempotent(t *testing.T) {
	l := NewLedger()

	if !l.ClockIn("04A1", baseTime) {
		t.Fatal("expected first clock-in to open")
	}

	if l.ClockIn("04A1", baseTime.Add(time.Minute)) {
		t.Error("expected second clock-in to be a no-op")
	}

	w, _ := l.Worker("04A1")

	since, on := w.Clock.On()
	if !on || !since.Equal(baseTime) {
		t.Errorf("expected clock-in to remain open at %v, but got: %v (%t)", baseTime, since, on)
	}
}

func TestLedgerClockOutAccrues(t *testing.T) {
	l := NewLedger()
	l.ClockIn("04A1", baseTime)

	minutes, ok := l.ClockOut("04A1", baseTime.Add(90*time.Minute))
	if !ok {
		t.Fatal("expected clock-out to close an open clock-in")
	}

	if minutes != 90 {
		t.Errorf("expected 90 minutes accrued this shift, but got: %v", minutes)
	}

	if _, ok := l.ClockOut("04A1", baseTime.Add(2*time.Hour)); ok {
		t.Error("expected a second clock-out to report false")
	}
}

func TestLedgerHeadcount(t *testing.T) {
	l := NewLedger()

	l.ClockIn("04A1", baseTime)
	l.ClockIn("09F2", baseTime)
	l.ClockIn("11C3", baseTime)
	l.ClockOut("09F2", baseTime.Add(time.Minute))

	if got := l.Headcount(); got != 2 {
		t.Errorf("expected headcount 2, but got: %d", got)
	}

	if diff := cmp.Diff([]string{"04A1", "11C3"}, l.ActiveIDs()); diff != "" {
		t.Errorf("active IDs mismatch:\n%s", diff)
	}
}

func TestLedgerRestoreRoundTrip(t *testing.T) {
	l := NewLedger()
	l.ClockIn("04A1", baseTime)
	l.ClockOut("04A1", baseTime.Add(30*time.Minute))
	l.ClockIn("09F2", baseTime.Add(time.Hour))

	restored := NewLedger()
	restored.Restore(l.Workers())

	opts := cmp.AllowUnexported(ClockState{})

	if diff := cmp.Diff(l.Workers(), restored.Workers(), opts, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("restored ledger mismatch:\n%s", diff)
	}
}
