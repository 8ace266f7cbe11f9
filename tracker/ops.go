package tracker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/Make-USA-LLC/floortrack/internal/models"
	"github.com/Make-USA-LLC/floortrack/internal/session"
	"github.com/Make-USA-LLC/floortrack/report"
)

// ErrLeaderRequired is returned when a queue item is claimed without a line
// leader assigned. The caller is expected to collect one and retry.
var ErrLeaderRequired = errors.New("a line leader must be assigned before starting")

// StartSession begins a fresh countdown with the given budget and job
// metadata. Any prior session state is overwritten.
func (t *Tracker) StartSession(hours, minutes, seconds int, meta models.ProjectMeta) {
	t.do(func() {
		t.meta = meta
		t.startSeconds(hours*3600+minutes*60+seconds, t.now())
	})
}

// startSeconds arms the countdown. It also settles any claimed queue item:
// once a session is actually running, the item it came from must not be
// claimable elsewhere.
func (t *Tracker) startSeconds(total int, now time.Time) {
	if t.pendingQueueID != "" {
		err := t.Opts.DB.DeleteQueueItem(t.pendingQueueID)
		if err != nil {
			t.logger().Error(
				"claimed queue item not deleted",
				slog.String("id", t.pendingQueueID),
				slog.Any("error", err),
			)
		}

		t.pendingQueueID = ""
	}

	t.pendingPreload = nil
	t.countdown = total
	t.original = total
	t.countingDown = true
	t.finished = false
	t.buzzerPlayed = false
	t.pause = session.PauseRunning()
	t.lastTick = now

	t.persist()
	t.push(true)
}

// Pause freezes the countdown. The operator code must match the configured
// pause credential; it reports whether the pause took effect.
func (t *Tracker) Pause(code string) bool {
	var ok bool

	t.do(func() {
		if code != t.Opts.Config.Credentials.PausePIN {
			return
		}

		ok = t.pauseManual(t.now())
	})

	return ok
}

func (t *Tracker) pauseManual(now time.Time) bool {
	if t.finished || t.pause.Paused() {
		return false
	}

	t.pause = session.PauseState{Kind: session.ManualPause}
	t.journal.AppendEvent(session.ProjectEvent{
		Timestamp: now,
		Type:      session.EventPause,
	})

	t.persist()
	t.push(true)
	t.sound.Play(soundChime)

	return true
}

// Resume restarts the countdown after a manual pause or lunch break.
// Credential-gated holds reject it; they release only through their own
// toggles.
func (t *Tracker) Resume() session.ResumeFeedback {
	var fb session.ResumeFeedback

	t.do(func() {
		fb = t.resume(t.now())
	})

	return fb
}

func (t *Tracker) resume(now time.Time) session.ResumeFeedback {
	if t.finished {
		return session.ResumeIgnoredFinished
	}

	if t.pause.CredentialGated() {
		return session.ResumeIgnoredGated
	}

	t.resumeInternal(now)

	return session.ResumeOK
}

// resumeInternal clears the pause unconditionally. The drain reference
// resets so paused wall time is never charged against the budget.
func (t *Tracker) resumeInternal(now time.Time) {
	t.pause = session.PauseRunning()
	t.lunchStart = time.Time{}
	t.lastTick = now

	t.persist()
	t.push(true)
}

// ToggleQC enters or exits a quality-control hold. The kind must be QCCrew
// or QCComponent and the code must match the QC credential. Entering a crew
// hold permanently cancels the session bonus.
func (t *Tracker) ToggleQC(kind session.PauseKind, code string) bool {
	var ok bool

	t.do(func() {
		if code != t.Opts.Config.Credentials.QCPIN {
			return
		}

		if kind != session.QCCrew && kind != session.QCComponent {
			return
		}

		ok = t.toggleHold(session.PauseState{Kind: kind}, t.now())
	})

	return ok
}

// ToggleTechnician enters or exits a technician hold tagged with the machine
// line being serviced. The code must match the technician credential.
func (t *Tracker) ToggleTechnician(code, line string) bool {
	var ok bool

	t.do(func() {
		if code != t.Opts.Config.Credentials.TechPIN {
			return
		}

		ok = t.toggleHold(session.TechnicianHold(line), t.now())
	})

	return ok
}

// toggleHold flips a credential-gated hold. A second toggle of the same
// kind releases it; a different hold already being active rejects entry, so
// exactly one hold reason exists at a time.
func (t *Tracker) toggleHold(next session.PauseState, now time.Time) bool {
	if t.finished {
		return false
	}

	if t.pause.Kind == next.Kind {
		t.resumeInternal(now)
		return true
	}

	if t.pause.Paused() {
		return false
	}

	t.pause = next

	if next.Kind == session.QCCrew {
		t.cancelBonus("QC crew hold")
	}

	t.journal.AppendEvent(session.ProjectEvent{
		Timestamp: now,
		Type:      next.EventType(),
		Value:     next.Line,
	})

	t.persist()
	t.push(true)
	t.sound.Play(soundChime)

	return true
}

// TakeLunch starts the once-per-shift manual lunch break.
func (t *Tracker) TakeLunch() session.LunchFeedback {
	var fb session.LunchFeedback

	t.do(func() {
		fb = t.takeLunch(t.now())
	})

	return fb
}

func (t *Tracker) takeLunch(now time.Time) session.LunchFeedback {
	switch {
	case t.finished:
		return session.LunchIgnoredFinished
	case t.pause.Paused():
		return session.LunchIgnoredPaused
	case t.ledger.Headcount() == 0:
		return session.LunchIgnoredNoWorkers
	case t.hasUsedLunch:
		return session.LunchIgnoredUsed
	}

	t.pause = session.PauseState{Kind: session.ManualLunch}
	t.hasUsedLunch = true
	t.lunchStart = now
	t.journal.AppendEvent(session.ProjectEvent{
		Timestamp: now,
		Type:      session.EventLunch,
	})

	t.persist()
	t.push(true)
	t.sound.Play(soundChime)

	return session.LunchStarted
}

// startAutoLunch enters the window-driven lunch variant. It has no fixed
// duration; the tick loop releases it when the clock leaves the window.
func (t *Tracker) startAutoLunch(now time.Time) {
	t.pause = session.PauseState{Kind: session.AutoLunch}
	t.hasUsedLunch = true
	t.lunchStart = time.Time{}
	t.journal.AppendEvent(session.ProjectEvent{
		Timestamp: now,
		Type:      session.EventLunch,
	})

	t.persist()
	t.push(true)
	t.sound.Play(soundChime)
}

// Scan processes a badge read: an unknown or clocked-out card clocks in, a
// clocked-in card clocks out. Scans are ignored while paused or finished so
// accrued minutes stay consistent with the frozen countdown.
func (t *Tracker) Scan(cardID string) session.ScanFeedback {
	var fb session.ScanFeedback

	t.do(func() {
		fb = t.scan(cardID, t.now())
	})

	return fb
}

func (t *Tracker) scan(cardID string, now time.Time) session.ScanFeedback {
	if t.finished {
		return session.ScanFeedback{Kind: session.ScanIgnoredFinished, CardID: cardID}
	}

	if t.pause.Paused() {
		return session.ScanFeedback{Kind: session.ScanIgnoredPaused, CardID: cardID}
	}

	if t.ledger.Active(cardID) {
		t.clockOut(cardID, now)
		return session.ScanFeedback{Kind: session.ScanClockedOut, CardID: cardID}
	}

	t.clockIn(cardID, now)

	return session.ScanFeedback{Kind: session.ScanClockedIn, CardID: cardID}
}

func (t *Tracker) clockIn(cardID string, now time.Time) {
	if !t.ledger.ClockIn(cardID, now) {
		return
	}

	t.journal.AppendScan(session.ScanEvent{
		CardID:    cardID,
		Timestamp: now,
		Action:    session.ClockIn,
	})

	t.persist()
	t.push(true)
}

// clockOut closes a worker's open interval. The journal append is guarded
// against a duplicate trailing clock-out for the same card, which can
// happen when a remote command races a local scan.
func (t *Tracker) clockOut(cardID string, now time.Time) {
	_, ok := t.ledger.ClockOut(cardID, now)
	if !ok {
		return
	}

	if last, found := t.journal.LastScanFor(cardID); !found ||
		last.Action != session.ClockOut {
		t.journal.AppendScan(session.ScanEvent{
			CardID:    cardID,
			Timestamp: now,
			Action:    session.ClockOut,
		})
	}

	t.persist()
	t.push(true)
}

// clockOutAll closes every open interval. Used when a session is saved or
// finished so no worker keeps accruing against a dead session.
func (t *Tracker) clockOutAll(now time.Time) {
	for _, id := range t.ledger.ActiveIDs() {
		_, ok := t.ledger.ClockOut(id, now)
		if !ok {
			continue
		}

		if last, found := t.journal.LastScanFor(id); !found ||
			last.Action != session.ClockOut {
			t.journal.AppendScan(session.ScanEvent{
				CardID:    id,
				Timestamp: now,
				Action:    session.ClockOut,
			})
		}
	}
}

// SaveToQueue suspends the session into the shared queue for another shift
// to resume. Everyone is clocked out first, so the saved log is settled.
func (t *Tracker) SaveToQueue() session.SaveFeedback {
	var fb session.SaveFeedback

	t.do(func() {
		fb = t.saveToQueue(t.now())
	})

	return fb
}

func (t *Tracker) saveToQueue(now time.Time) session.SaveFeedback {
	if t.meta.Empty() {
		return session.SaveMissingMetadata
	}

	t.clockOutAll(now)
	t.journal.AppendEvent(session.ProjectEvent{
		Timestamp: now,
		Type:      session.EventSave,
	})

	item := &models.QueueItem{
		Meta:            t.meta,
		Seconds:         t.countdown,
		OriginalSeconds: t.original,
		CreatedAt:       now,
		Log:             t.journal,
	}

	_, err := t.Opts.DB.InsertQueueItem(item)
	if err != nil {
		t.logger().Error("queue insert failed", slog.Any("error", err))
		return session.SaveFailed
	}

	t.resetState()
	t.persist()
	t.push(true)

	return session.SaveQueued
}

// StartFromQueue claims a queued session: its log is replayed into a fresh
// ledger and the countdown resumes from the saved remaining budget. The
// item must carry a line leader before it can start.
func (t *Tracker) StartFromQueue(item models.QueueItem) error {
	if item.Meta.Leader == "" {
		return ErrLeaderRequired
	}

	t.do(func() {
		t.startFromQueue(item, t.now())
	})

	return nil
}

func (t *Tracker) startFromQueue(item models.QueueItem, now time.Time) {
	t.journal = item.Log
	t.ledger = session.Reconstruct(item.Log.SortedScans())
	t.meta = item.Meta
	t.pendingQueueID = item.ID

	t.startSeconds(item.Seconds, now)

	// keep the full budget from the original run, not the remainder
	if item.OriginalSeconds > 0 && item.OriginalSeconds != t.original {
		t.original = item.OriginalSeconds
		t.persist()
		t.push(true)
	}
}

// Finish closes out the session: everyone is clocked out, the frozen report
// is archived, and the countdown stops accepting scans until a reset.
func (t *Tracker) Finish() {
	t.do(func() {
		t.finish(t.now())
	})
}

func (t *Tracker) finish(now time.Time) {
	if t.finished {
		return
	}

	t.clockOutAll(now)

	t.finished = true
	t.countingDown = false
	t.hasUsedLunch = false
	t.lunchStart = time.Time{}

	r := report.Build(t.meta, t.ledger.Workers(), t.workerNames, now, t.bonus)

	err := t.Opts.DB.SaveReport(r)
	if err != nil {
		t.logger().Error("report archive failed", slog.Any("error", err))
	}

	t.persist()
	t.push(true)

	t.sound.Play(soundRegister)
	t.sound.Alert(
		"Session finished",
		t.meta.Project+" closed out with "+t.timerText()+" remaining",
	)
	t.runFinishHook()
}

// ResetData wipes the session back to a blank slate.
func (t *Tracker) ResetData() {
	t.do(func() {
		t.resetData()
	})
}

func (t *Tracker) resetData() {
	t.resetState()
	t.persist()
	t.push(true)
}

// EditWorkerMinutes overwrites a worker's accrued minutes. A manual edit
// always voids the bonus; the ledger no longer reflects only badge scans.
func (t *Tracker) EditWorkerMinutes(cardID string, minutes float64) bool {
	var ok bool

	t.do(func() {
		ok = t.editWorkerMinutes(cardID, minutes)
	})

	return ok
}

func (t *Tracker) editWorkerMinutes(cardID string, minutes float64) bool {
	if !t.ledger.SetTotalMinutes(cardID, minutes) {
		return false
	}

	t.cancelBonus("manual hours edit")
	t.persist()
	t.push(true)

	return true
}

// CancelBonus voids bonus eligibility for the rest of the session.
func (t *Tracker) CancelBonus(reason string) {
	t.do(func() {
		t.cancelBonus(reason)
		t.persist()
		t.push(true)
	})
}

// cancelBonus trips the one-way latch. The first reason sticks.
func (t *Tracker) cancelBonus(reason string) {
	if !t.bonus.Eligible {
		return
	}

	t.bonus = models.BonusState{Eligible: false, Reason: reason}
}

// preload stages a budget received from the controller without starting it.
// The operator confirms on the kiosk before the countdown arms.
func (t *Tracker) preload(seconds int, now time.Time) {
	t.countdown = seconds
	t.original = seconds
	t.countingDown = false
	t.finished = false
	t.buzzerPlayed = false
	t.pause = session.PauseRunning()
	t.pendingPreload = &models.QueueItem{
		Meta:            t.meta,
		Seconds:         seconds,
		OriginalSeconds: seconds,
		CreatedAt:       now,
	}

	t.persist()
	t.push(true)
}

// ConfirmPreload arms a staged budget, if one is waiting.
func (t *Tracker) ConfirmPreload() bool {
	var ok bool

	t.do(func() {
		if t.pendingPreload == nil {
			return
		}

		t.startSeconds(t.pendingPreload.Seconds, t.now())

		ok = true
	})

	return ok
}
