package tracker

import (
	"log/slog"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/Make-USA-LLC/floortrack/internal/session"
	"github.com/Make-USA-LLC/floortrack/remote"
)

// handleSnapshot processes one inbound remote document. Order matters: a
// blank kiosk first adopts the remote session, logs merge before any
// command runs against them, and the command dispatch is arbitrated so
// echoes of our own pushes never re-execute anything.
func (t *Tracker) handleSnapshot(doc remote.Document) {
	now := t.now()

	t.maybeAdoptSession(doc, now)
	t.syncMeta(doc)
	t.mergeLogs(doc)
	t.syncOriginalSeconds(doc)

	if names, ok := remote.StringMap(doc, remote.FieldWorkerNames); ok {
		t.workerNames = names
	}

	t.applyCommand(doc, now)
}

// maybeAdoptSession restores a session another device published when this
// kiosk has nothing of its own: no budget, no workers, no project. The
// adopted session comes up paused so the operator decides when drain
// resumes. Anything short of fully blank keeps local state authoritative.
func (t *Tracker) maybeAdoptSession(doc remote.Document, now time.Time) {
	if t.countdown != 0 || len(t.ledger.IDs()) != 0 || t.meta.Project != "" {
		return
	}

	secs, ok := remote.Int(doc, remote.FieldSecondsRemaining)
	if !ok || secs <= 0 {
		return
	}

	t.countdown = secs
	t.original = secs

	if orig, ok := remote.Int(doc, remote.FieldOriginalSeconds); ok && orig > 0 {
		t.original = orig
	}

	t.countingDown = true
	t.finished = false
	t.pause = session.PauseState{Kind: session.ManualPause}
	t.lastTick = time.Time{}

	if active, ok := remote.Strings(doc, remote.FieldActiveWorkers); ok {
		for _, id := range active {
			t.ledger.ClockIn(id, now)
		}
	}

	t.logger().Info(
		"adopted remote session",
		slog.Int("countdown_seconds", secs),
		slog.Int("workers", t.ledger.Headcount()),
	)

	t.persist()
}

// syncMeta mirrors job metadata from the controller. The controller is
// authoritative for these fields; absent fields keep their local values.
func (t *Tracker) syncMeta(doc remote.Document) {
	if v, ok := remote.String(doc, remote.FieldCompanyName); ok {
		t.meta.Company = v
	}

	if v, ok := remote.String(doc, remote.FieldProjectName); ok {
		t.meta.Project = v
	}

	if v, ok := remote.String(doc, remote.FieldLeaderName); ok {
		t.meta.Leader = v
	}

	if v, ok := remote.String(doc, remote.FieldCategory); ok {
		t.meta.Category = v
	}

	if v, ok := remote.String(doc, remote.FieldProjectSize); ok {
		t.meta.Size = v
	}
}

// mergeLogs adopts remote event history, but only into an empty local log.
// The local log is append-only ground truth once it has entries; merging
// into it would let a stale document rewrite history.
func (t *Tracker) mergeLogs(doc remote.Document) {
	var adopted bool

	scans := remote.ScanEvents(doc, remote.FieldScanHistory)
	if len(scans) > 0 && len(t.journal.Scans) == 0 {
		t.journal.Scans = scans
		t.ledger = session.Reconstruct(t.journal.SortedScans())
		adopted = true
	}

	events := remote.ProjectEvents(doc, remote.FieldProjectEvents)
	if len(events) > 0 && len(t.journal.Events) == 0 {
		t.journal.Events = events
		adopted = true
	}

	if adopted {
		t.persist()
	}
}

// syncOriginalSeconds backfills the total budget from the controller when
// the countdown is idle. A running countdown keeps its own total.
func (t *Tracker) syncOriginalSeconds(doc remote.Document) {
	orig, ok := remote.Int(doc, remote.FieldOriginalSeconds)
	if !ok || orig <= 0 {
		return
	}

	if t.countdown == 0 && t.original != orig {
		t.original = orig
	}
}

// applyCommand dispatches the command carried on the document, if the
// arbiter rules it should run. Malformed commands are recorded by the
// arbiter and dropped, so a bad write cannot be replayed forever.
func (t *Tracker) applyCommand(doc remote.Document, now time.Time) {
	raw, ok := remote.String(doc, remote.FieldRemoteCommand)
	if !ok || raw == "" {
		return
	}

	stamp, ok := remote.Time(doc, remote.FieldCommandTimestamp)
	if !ok {
		return
	}

	if !t.arbiter.ShouldApply(stamp, now) {
		return
	}

	cmd, ok := remote.ParseCommand(raw)
	if !ok {
		t.logger().Warn("ignoring malformed remote command", slog.String("raw", raw))
		return
	}

	t.logger().Info(
		"applying remote command",
		slog.String("action", string(cmd.Action)),
		slog.Time("stamp", stamp),
	)
	t.logger().Debug(spew.Sdump(cmd))

	t.dispatch(cmd, now)
}

func (t *Tracker) dispatch(cmd remote.Command, now time.Time) {
	switch cmd.Action {
	case remote.ActionPreload:
		t.preload(cmd.Seconds, now)

	case remote.ActionToggle:
		if !t.pause.Paused() {
			t.pauseManual(now)
		} else if !t.pause.CredentialGated() {
			t.resumeInternal(now)
		}

	case remote.ActionLunch:
		t.takeLunch(now)

	case remote.ActionSave:
		t.saveToQueue(now)

	case remote.ActionReset:
		if cmd.HasTime {
			t.startSeconds(cmd.Seconds, now)
		} else {
			t.resetData()
		}

	case remote.ActionSetTime:
		t.startSeconds(cmd.Seconds, now)

	case remote.ActionFinish:
		t.finish(now)

	case remote.ActionClockOut:
		t.clockOut(cmd.CardID, now)

	case remote.ActionEditWorker:
		t.editWorkerMinutes(cmd.CardID, cmd.Minutes)

	case remote.ActionCancelBonus:
		t.cancelBonus("cancelled remotely")
		t.persist()
		t.push(true)

	case remote.ActionQCCrew:
		t.toggleHold(session.PauseState{Kind: session.QCCrew}, now)

	case remote.ActionQCComponent:
		t.toggleHold(session.PauseState{Kind: session.QCComponent}, now)

	case remote.ActionTechnician:
		t.toggleHold(session.TechnicianHold(cmd.Line), now)
	}
}
