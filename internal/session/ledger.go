package session

import (
	"slices"
	"time"

	"github.com/maruel/natural"
)

const minuteSeconds = 60

// Ledger maps card UIDs to workers and tracks their accrued minutes. All of
// its derived state can be rebuilt from the scan history with Reconstruct.
type Ledger struct {
	workers map[string]*Worker
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{workers: make(map[string]*Worker)}
}

// Reconstruct replays scan events sorted ascending by timestamp into a fresh
// ledger. Replaying the same history twice yields identical ledgers, which is
// what makes it safe to run both for incremental updates and for full
// recovery after a remote restore.
func Reconstruct(events []ScanEvent) *Ledger {
	l := NewLedger()

	for _, ev := range events {
		w := l.getOrCreate(ev.CardID)

		switch ev.Action {
		case ClockIn:
			w.Clock = ClockedInAt(ev.Timestamp)
		case ClockOut:
			// a clock-out with no open clock-in is a no-op
			if since, on := w.Clock.On(); on {
				w.TotalMinutes += ev.Timestamp.Sub(since).Minutes()
				w.Clock = ClockState{}
			}
		}
	}

	return l
}

func (l *Ledger) getOrCreate(id string) *Worker {
	w, ok := l.workers[id]
	if !ok {
		w = &Worker{ID: id}
		l.workers[id] = w
	}

	return w
}

// Exists reports whether the ledger has seen the given card at all.
func (l *Ledger) Exists(id string) bool {
	_, ok := l.workers[id]
	return ok
}

// Active reports whether the given card holder is currently clocked in.
func (l *Ledger) Active(id string) bool {
	w, ok := l.workers[id]
	if !ok {
		return false
	}

	_, on := w.Clock.On()

	return on
}

// ClockIn opens a clock-in for the card at the given time. It reports false
// if the worker already has an open clock-in, in which case nothing changes.
func (l *Ledger) ClockIn(id string, now time.Time) bool {
	w := l.getOrCreate(id)

	if _, on := w.Clock.On(); on {
		return false
	}

	w.Clock = ClockedInAt(now)

	return true
}

// ClockOut closes the card's open clock-in at the given time and accrues the
// elapsed minutes. It reports false if no clock-in was open.
func (l *Ledger) ClockOut(id string, now time.Time) (minutes float64, ok bool) {
	w, exists := l.workers[id]
	if !exists {
		return 0, false
	}

	since, on := w.Clock.On()
	if !on {
		return 0, false
	}

	minutes = now.Sub(since).Minutes()
	w.TotalMinutes += minutes
	w.Clock = ClockState{}

	return minutes, true
}

// SetTotalMinutes overwrites a worker's accrued minutes. Used by the manual
// hours-edit flow; the bonus consequences are the caller's concern.
func (l *Ledger) SetTotalMinutes(id string, minutes float64) bool {
	w, ok := l.workers[id]
	if !ok {
		return false
	}

	w.TotalMinutes = minutes

	return true
}

// TotalMinutes returns the accrued minutes for a card, or 0 if unknown.
func (l *Ledger) TotalMinutes(id string) float64 {
	w, ok := l.workers[id]
	if !ok {
		return 0
	}

	return w.TotalMinutes
}

// Headcount is the number of workers currently clocked in. It is always
// recomputed from the ledger, never stored.
func (l *Ledger) Headcount() int {
	var n int

	for _, w := range l.workers {
		if _, on := w.Clock.On(); on {
			n++
		}
	}

	return n
}

// ActiveIDs returns the cards with an open clock-in in natural order.
func (l *Ledger) ActiveIDs() []string {
	var ids []string

	for id, w := range l.workers {
		if _, on := w.Clock.On(); on {
			ids = append(ids, id)
		}
	}

	slices.SortFunc(ids, func(a, b string) int {
		if natural.Less(a, b) {
			return -1
		} else if a == b {
			return 0
		}

		return 1
	})

	return ids
}

// IDs returns every known card in natural order.
func (l *Ledger) IDs() []string {
	ids := make([]string, 0, len(l.workers))

	for id := range l.workers {
		ids = append(ids, id)
	}

	slices.SortFunc(ids, func(a, b string) int {
		if natural.Less(a, b) {
			return -1
		} else if a == b {
			return 0
		}

		return 1
	})

	return ids
}

// Worker returns a copy of the ledger entry for the given card.
func (l *Ledger) Worker(id string) (Worker, bool) {
	w, ok := l.workers[id]
	if !ok {
		return Worker{}, false
	}

	return *w, true
}

// Workers returns copies of every ledger entry, ordered naturally by card.
func (l *Ledger) Workers() []Worker {
	ids := l.IDs()

	workers := make([]Worker, 0, len(ids))
	for _, id := range ids {
		workers = append(workers, *l.workers[id])
	}

	return workers
}

// Restore replaces the ledger contents with the given workers. Used when
// loading a persisted snapshot.
func (l *Ledger) Restore(workers []Worker) {
	l.workers = make(map[string]*Worker, len(workers))

	for i := range workers {
		w := workers[i]
		l.workers[w.ID] = &w
	}
}

// Reset discards every worker.
func (l *Ledger) Reset() {
	l.workers = make(map[string]*Worker)
}
