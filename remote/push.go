package remote

import (
	"log/slog"
	"time"
)

// Pusher throttles outbound state pushes. Steady-state tick pushes are
// rate-limited to keep the document store cheap; discrete operator actions
// force an immediate push so control-plane latency stays low.
type Pusher struct {
	store       Store
	stationID   string
	minInterval time.Duration
	diag        *slog.Logger
	lastPush    time.Time
}

// NewPusher returns a pusher for the given station document.
func NewPusher(store Store, stationID string, minInterval time.Duration, diag *slog.Logger) *Pusher {
	return &Pusher{
		store:       store,
		stationID:   stationID,
		minInterval: minInterval,
		diag:        diag,
	}
}

// Push mirrors the document to the remote store. Unless forced, pushes
// closer together than the minimum interval are dropped. The write itself is
// fire-and-forget: local ticking never depends on connectivity, so transport
// errors are only logged.
func (p *Pusher) Push(doc Document, force bool) {
	if p.store == nil || p.stationID == "" {
		return
	}

	now := time.Now()

	if !force && now.Sub(p.lastPush) < p.minInterval {
		return
	}

	p.lastPush = now

	go func() {
		err := p.store.Push(p.stationID, doc, true)
		if err != nil && p.diag != nil {
			p.diag.Error("remote push failed", slog.Any("error", err))
		}
	}()
}
