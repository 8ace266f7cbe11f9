package remote

import (
	"testing"
	"time"
)

func TestArbiterFirstSnapshot(t *testing.T) {
	now := time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)

	t.Run("fresh command executes", func(t *testing.T) {
		var a Arbiter

		if !a.ShouldApply(now.Add(-30*time.Second), now) {
			t.Error("expected a 30s-old command to execute on first snapshot")
		}
	})

	t.Run("stale command is recorded but not executed", func(t *testing.T) {
		var a Arbiter

		stale := now.Add(-2 * time.Hour)

		if a.ShouldApply(stale, now) {
			t.Error("expected a 2h-old command to be skipped on first snapshot")
		}

		if !a.LastApplied().Equal(stale) {
			t.Error("expected the stale stamp to be recorded anyway")
		}
	})
}

func TestArbiterIdempotency(t *testing.T) {
	now := time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)

	var a Arbiter

	stamp := now.Add(-10 * time.Second)

	if !a.ShouldApply(stamp, now) {
		t.Fatal("expected first application to execute")
	}

	// the same (command, timestamp) pair arrives again via a duplicate
	// snapshot
	if a.ShouldApply(stamp, now.Add(5*time.Second)) {
		t.Error("expected a replayed stamp to be a no-op")
	}

	if a.ShouldApply(stamp.Add(-time.Second), now.Add(6*time.Second)) {
		t.Error("expected an older stamp to be a no-op")
	}

	if !a.ShouldApply(stamp.Add(time.Second), now.Add(7*time.Second)) {
		t.Error("expected a strictly newer stamp to execute")
	}
}

func TestMemoryStoreEcho(t *testing.T) {
	m := NewMemory()

	var got []Document

	cancel, err := m.Subscribe("station-7", func(doc Document) {
		got = append(got, doc)
	})
	if err != nil {
		t.Fatal(err)
	}

	defer cancel()

	err = m.Push("station-7", Document{FieldSecondsRemaining: 120}, true)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 1 {
		t.Fatalf("expected the pusher to receive its own echo, got %d snapshots", len(got))
	}

	secs, ok := Int(got[0], FieldSecondsRemaining)
	if !ok || secs != 120 {
		t.Errorf("expected secondsRemaining=120 in the echo, but got: %v", got[0])
	}

	// merge keeps absent fields
	err = m.Push("station-7", Document{FieldProjectName: "Spring 100ML"}, true)
	if err != nil {
		t.Fatal(err)
	}

	doc := m.Document("station-7")

	if secs, _ := Int(doc, FieldSecondsRemaining); secs != 120 {
		t.Error("expected merge push to preserve secondsRemaining")
	}
}
