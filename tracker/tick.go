package tracker

import (
	"time"

	"github.com/Make-USA-LLC/floortrack/internal/session"
	"github.com/Make-USA-LLC/floortrack/internal/timeutil"
)

// shiftStartTolerance is how far past a shift start the lunch allowance
// still re-arms. Ticks are one second apart, so a minute is ample.
const shiftStartTolerance = timeutil.ClockTime(1)

// tick advances the session by one wall-clock step. The order matters:
// lunch releases run before drain so the second that ends a lunch break is
// not also charged, and the budget drains before the buzzer check so the
// exhaustion edge is observed on the tick that crosses it.
func (t *Tracker) tick(now time.Time) {
	if t.finished || !t.countingDown {
		return
	}

	t.releaseLunch(now)
	t.maybeStartAutoLunch(now)
	t.rearmLunchAllowance(now)
	t.drain(now)

	t.tickCount++
	if t.tickCount%persistEvery == 0 {
		t.persist()
	}

	t.push(false)
}

// releaseLunch ends a lunch break that has run its course: a manual break
// after its configured duration, an automatic one when the clock leaves
// every lunch window.
func (t *Tracker) releaseLunch(now time.Time) {
	switch t.pause.Kind {
	case session.ManualLunch:
		if !t.lunchStart.IsZero() &&
			now.Sub(t.lunchStart) >= t.Opts.Config.Lunch.Duration {
			t.resumeInternal(now)
		}
	case session.AutoLunch:
		if !timeutil.InAnyWindow(t.Opts.Config.Lunch.Windows, timeutil.ClockTimeOf(now)) {
			t.resumeInternal(now)
		}
	}
}

// maybeStartAutoLunch enters the automatic lunch break when the clock is
// inside a lunch window, the session is running with workers on it, and the
// shift's lunch allowance is unspent.
func (t *Tracker) maybeStartAutoLunch(now time.Time) {
	if t.pause.Paused() || t.hasUsedLunch || t.ledger.Headcount() == 0 {
		return
	}

	if timeutil.InAnyWindow(t.Opts.Config.Lunch.Windows, timeutil.ClockTimeOf(now)) {
		t.startAutoLunch(now)
	}
}

// rearmLunchAllowance clears the once-per-shift lunch lock when a new shift
// begins.
func (t *Tracker) rearmLunchAllowance(now time.Time) {
	if !t.hasUsedLunch {
		return
	}

	ct := timeutil.ClockTimeOf(now)

	for _, start := range t.Opts.Config.Shift.Starts {
		if ct >= start && ct < start+shiftStartTolerance {
			t.hasUsedLunch = false
			t.persist()

			return
		}
	}
}

// drain charges the elapsed wall time against the budget, weighted by
// headcount: each clocked-in worker consumes budget in parallel, with a
// floor of one second per tick. Paused or empty sessions advance the drain
// reference without charging, so skipped time is never billed on resume.
func (t *Tracker) drain(now time.Time) {
	if t.pause.Paused() || t.ledger.Headcount() == 0 {
		t.lastTick = now
		return
	}

	if t.lastTick.IsZero() {
		t.lastTick = now
		return
	}

	elapsed := now.Sub(t.lastTick).Seconds()
	t.lastTick = now

	sub := timeutil.Round(elapsed * float64(t.ledger.Headcount()))
	if sub < 1 {
		sub = 1
	}

	prev := t.countdown
	t.countdown -= sub

	if prev > 0 && t.countdown <= 0 && !t.buzzerPlayed {
		t.buzzerPlayed = true
		t.persist()

		t.sound.Play(soundBuzzer)
		t.sound.Alert("Time exhausted", t.meta.Project+" has used its full budget")
	}
}
