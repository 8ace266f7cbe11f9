package remote

import "time"

// firstSnapshotFreshness bounds how old a command may be and still execute
// when this process has no arbitration history yet. The first inbound
// snapshot after startup replays whatever command was last written to the
// document, which may predate this process by hours.
const firstSnapshotFreshness = time.Minute

// Arbiter decides whether an inbound command timestamp should be applied.
// Each (command, timestamp) pair is applied at most once: replays and
// duplicate snapshots are no-ops.
type Arbiter struct {
	lastApplied time.Time
}

// ShouldApply reports whether a command stamped at the given time should
// execute, and records the stamp either way. After startup a command
// executes only if it is fresh; thereafter only strictly newer stamps
// execute.
func (a *Arbiter) ShouldApply(stamp, now time.Time) bool {
	if a.lastApplied.IsZero() {
		a.lastApplied = stamp

		age := now.Sub(stamp)
		if age < 0 {
			age = -age
		}

		return age < firstSnapshotFreshness
	}

	if stamp.After(a.lastApplied) {
		a.lastApplied = stamp
		return true
	}

	return false
}

// LastApplied returns the most recently observed command timestamp.
func (a *Arbiter) LastApplied() time.Time {
	return a.lastApplied
}
