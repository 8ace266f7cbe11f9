package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Make-USA-LLC/floortrack/internal/models"
	"github.com/Make-USA-LLC/floortrack/internal/session"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(filepath.Join(t.TempDir(), "floortrack_test.db"))
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func sampleSnapshot() *models.Snapshot {
	snap := &models.Snapshot{
		CountdownSeconds: 4230,
		OriginalSeconds:  7200,
		Meta: models.ProjectMeta{
			Company:  "Acme Fragrance",
			Project:  "Spring 100ML",
			Leader:   "R. Alvarez",
			Category: "Fragrance",
			Size:     "100ML",
		},
		Pause:        session.PauseState{Kind: session.ManualPause},
		CountingDown: true,
		HasUsedLunch: true,
		Bonus:        models.BonusState{Eligible: true},
	}

	now := time.Date(2025, time.March, 14, 6, 0, 0, 0, time.UTC)

	snap.Workers = []session.Worker{
		{ID: "04A1", Clock: session.ClockedInAt(now), TotalMinutes: 12.5},
		{ID: "09F2", TotalMinutes: 44},
	}

	snap.Log.AppendScan(session.ScanEvent{
		CardID:    "04A1",
		Timestamp: now,
		Action:    session.ClockIn,
	})

	return snap
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := newTestClient(t)

	snap := sampleSnapshot()

	err := c.SaveSnapshot(snap)
	if err != nil {
		t.Fatal(err)
	}

	got, err := c.LoadSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	opts := cmp.Options{
		cmp.AllowUnexported(session.ClockState{}),
		cmpopts.EquateEmpty(),
	}

	if diff := cmp.Diff(snap, got, opts); diff != "" {
		t.Errorf("snapshot did not round-trip:\n%s", diff)
	}
}

func TestLoadSnapshotEmpty(t *testing.T) {
	c := newTestClient(t)

	got, err := c.LoadSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	if got != nil {
		t.Errorf("expected no snapshot in a fresh store, but got: %+v", got)
	}
}

func TestClearSnapshot(t *testing.T) {
	c := newTestClient(t)

	err := c.SaveSnapshot(sampleSnapshot())
	if err != nil {
		t.Fatal(err)
	}

	err = c.ClearSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	got, err := c.LoadSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	if got != nil {
		t.Error("expected snapshot to be cleared")
	}
}

func TestQueueLifecycle(t *testing.T) {
	c := newTestClient(t)

	var notified [][]models.QueueItem

	c.SubscribeQueue(func(items []models.QueueItem) {
		notified = append(notified, items)
	})

	first := &models.QueueItem{
		Meta:            models.ProjectMeta{Company: "Acme", Project: "Kitting A"},
		Seconds:         1800,
		OriginalSeconds: 3600,
		CreatedAt:       time.Date(2025, time.March, 14, 8, 0, 0, 0, time.UTC),
	}
	second := &models.QueueItem{
		Meta:            models.ProjectMeta{Company: "Acme", Project: "Kitting B"},
		Seconds:         900,
		OriginalSeconds: 900,
		CreatedAt:       time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC),
	}

	firstID, err := c.InsertQueueItem(first)
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.InsertQueueItem(second)
	if err != nil {
		t.Fatal(err)
	}

	items, err := c.QueueItems()
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 queue items, but got: %d", len(items))
	}

	// oldest first
	if items[0].Meta.Project != "Kitting A" {
		t.Errorf("expected oldest item first, but got: %s", items[0].Meta.Project)
	}

	err = c.DeleteQueueItem(firstID)
	if err != nil {
		t.Fatal(err)
	}

	items, err = c.QueueItems()
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 1 || items[0].Meta.Project != "Kitting B" {
		t.Errorf("expected only Kitting B to remain, but got: %+v", items)
	}

	if len(notified) != 3 {
		t.Errorf("expected 3 queue notifications, but got: %d", len(notified))
	}
}

func TestDeleteQueueItemMissing(t *testing.T) {
	c := newTestClient(t)

	err := c.DeleteQueueItem("nope")
	if !errors.Is(err, errQueueItemNotFound) {
		t.Errorf("expected %v, but got: %v", errQueueItemNotFound, err)
	}
}

func TestReports(t *testing.T) {
	c := newTestClient(t)

	r := &models.Report{
		Meta: models.ProjectMeta{Company: "Acme", Project: "VOC Batch 7"},
		Workers: []models.WorkerReport{
			{ID: "04A1", Name: "M. Chen", Minutes: 125},
		},
		CompletedAt: time.Date(2025, time.March, 14, 15, 0, 0, 0, time.UTC),
		BonusStatus: "unpaid",
	}

	err := c.SaveReport(r)
	if err != nil {
		t.Fatal(err)
	}

	reports, err := c.Reports()
	if err != nil {
		t.Fatal(err)
	}

	if len(reports) != 1 {
		t.Fatalf("expected 1 report, but got: %d", len(reports))
	}

	if diff := cmp.Diff(*r, reports[0]); diff != "" {
		t.Errorf("report mismatch:\n%s", diff)
	}
}
