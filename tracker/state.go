package tracker

import (
	"log/slog"
	"time"

	"github.com/Make-USA-LLC/floortrack/internal/models"
	"github.com/Make-USA-LLC/floortrack/internal/session"
	"github.com/Make-USA-LLC/floortrack/remote"
)

// snapshot captures the full persistable session state.
func (t *Tracker) snapshot() *models.Snapshot {
	return &models.Snapshot{
		CountdownSeconds: t.countdown,
		OriginalSeconds:  t.original,
		Meta:             t.meta,
		Pause:            t.pause,
		CountingDown:     t.countingDown,
		Finished:         t.finished,
		HasUsedLunch:     t.hasUsedLunch,
		LunchStart:       t.lunchStart,
		BuzzerPlayed:     t.buzzerPlayed,
		Bonus:            t.bonus,
		Workers:          t.ledger.Workers(),
		Log:              t.journal,
	}
}

// applySnapshot replaces the session state with a persisted snapshot. The
// drain reference is cleared so the first tick after a restart never charges
// for downtime.
func (t *Tracker) applySnapshot(snap *models.Snapshot) {
	t.countdown = snap.CountdownSeconds
	t.original = snap.OriginalSeconds
	t.meta = snap.Meta
	t.pause = snap.Pause
	t.countingDown = snap.CountingDown
	t.finished = snap.Finished
	t.hasUsedLunch = snap.HasUsedLunch
	t.lunchStart = snap.LunchStart
	t.buzzerPlayed = snap.BuzzerPlayed
	t.bonus = snap.Bonus
	t.ledger.Restore(snap.Workers)
	t.journal = snap.Log
	t.lastTick = time.Time{}
}

// resetState returns the session to a blank slate. The claimed-queue-item
// reference survives so a reset issued mid-claim still deletes the item
// when the next session starts.
func (t *Tracker) resetState() {
	t.countdown = 0
	t.original = 0
	t.meta = models.ProjectMeta{}
	t.pause = session.PauseRunning()
	t.countingDown = false
	t.finished = false
	t.hasUsedLunch = false
	t.lunchStart = time.Time{}
	t.buzzerPlayed = false
	t.bonus = models.BonusState{Eligible: true}
	t.ledger.Reset()
	t.journal.Reset()
	t.pendingPreload = nil
	t.lastTick = time.Time{}
}

// persist writes the snapshot to the local store. Persistence failures are
// diagnostic only; the session keeps running on in-memory state.
func (t *Tracker) persist() {
	if t.Opts.DB == nil {
		return
	}

	err := t.Opts.DB.SaveSnapshot(t.snapshot())
	if err != nil {
		t.logger().Error("snapshot save failed", slog.Any("error", err))
	}
}

// push mirrors the session to the remote document. Forced pushes bypass the
// steady-state throttle.
func (t *Tracker) push(force bool) {
	doc := remote.BuildState(t.snapshot(), t.timerText(), t.ledger.ActiveIDs())
	t.pusher.Push(doc, force)
}
