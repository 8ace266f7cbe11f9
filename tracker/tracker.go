// Package tracker operates the work-session engine: the headcount-weighted
// countdown, the worker ledger, pause arbitration, and the mirror of it all
// pushed to the fleet controller.
package tracker

import (
	"context"
	"log/slog"
	"time"

	"github.com/Make-USA-LLC/floortrack/config"
	"github.com/Make-USA-LLC/floortrack/internal/models"
	"github.com/Make-USA-LLC/floortrack/internal/session"
	"github.com/Make-USA-LLC/floortrack/internal/timeutil"
	"github.com/Make-USA-LLC/floortrack/remote"
	"github.com/Make-USA-LLC/floortrack/store"
)

// persistEvery is the number of running ticks between periodic snapshot
// writes. Discrete operations persist immediately; this only bounds how
// much countdown progress a crash can lose.
const persistEvery = 60

// Tracker owns all mutable session state. A single goroutine started by Run
// performs every mutation; public methods hand closures to that goroutine
// over the command channel, so no field here needs a lock.
type Tracker struct {
	Opts Options

	countdown    int
	original     int
	meta         models.ProjectMeta
	pause        session.PauseState
	countingDown bool
	finished     bool
	hasUsedLunch bool
	lunchStart   time.Time
	buzzerPlayed bool
	bonus        models.BonusState
	ledger       *session.Ledger
	journal      session.Log

	lastTick       time.Time
	tickCount      int
	pendingQueueID string
	pendingPreload *models.QueueItem
	workerNames    map[string]string

	arbiter remote.Arbiter
	pusher  *remote.Pusher
	sound   *Notifier
	cmds    chan func()
	now     func() time.Time
}

// Options are the tracker's external dependencies.
type Options struct {
	Config *config.Config
	DB     store.DB
	Remote remote.Store
	Logger *slog.Logger
}

// New restores the tracker from the persisted snapshot, or starts blank if
// none exists.
func New(opts Options) (*Tracker, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	t := &Tracker{
		Opts:        opts,
		pause:       session.PauseRunning(),
		bonus:       models.BonusState{Eligible: true},
		ledger:      session.NewLedger(),
		workerNames: make(map[string]string),
		cmds:        make(chan func(), 64),
		now:         time.Now,
	}

	t.sound = NewNotifier(opts.Config.Sound, opts.Logger)
	t.pusher = remote.NewPusher(
		opts.Remote,
		opts.Config.Station.ID,
		opts.Config.Sync.PushInterval,
		opts.Logger,
	)

	snap, err := opts.DB.LoadSnapshot()
	if err != nil {
		return nil, err
	}

	if snap != nil {
		t.applySnapshot(snap)
		opts.Logger.Info(
			"restored session from local snapshot",
			slog.Int("countdown_seconds", t.countdown),
			slog.Int("workers", len(t.ledger.IDs())),
		)
	}

	return t, nil
}

// Run drives the tracker until the context is cancelled. It subscribes to
// the remote document, ticks the countdown once a second, and executes
// queued operations in between.
func (t *Tracker) Run(ctx context.Context) error {
	if t.Opts.Remote != nil && t.Opts.Config.Station.ID != "" {
		cancel, err := t.Opts.Remote.Subscribe(
			t.Opts.Config.Station.ID,
			func(doc remote.Document) {
				select {
				case t.cmds <- func() { t.handleSnapshot(doc) }:
				case <-ctx.Done():
				}
			},
		)
		if err != nil {
			return err
		}

		defer cancel()
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.persist()
			return nil
		case <-ticker.C:
			t.tick(t.now())
		case fn := <-t.cmds:
			fn()
		}
	}
}

// do runs fn on the tracker goroutine and waits for it to complete. Every
// public operation funnels through here.
func (t *Tracker) do(fn func()) {
	done := make(chan struct{})

	t.cmds <- func() {
		fn()
		close(done)
	}

	<-done
}

// Status is a read-only view of the session for rendering.
type Status struct {
	TimerText        string
	CountdownSeconds int
	OriginalSeconds  int
	Pause            session.PauseState
	CountingDown     bool
	Finished         bool
	HasUsedLunch     bool
	Meta             models.ProjectMeta
	Bonus            models.BonusState
	Headcount        int
	ActiveWorkers    []string
	Workers          []session.Worker
	PauseCount       int
	LunchCount       int
	ScanCount        int
	PendingPreload   *models.QueueItem
}

// Status reports the current session state.
func (t *Tracker) Status() Status {
	var s Status

	t.do(func() {
		s = t.status()
	})

	return s
}

func (t *Tracker) status() Status {
	return Status{
		TimerText:        t.timerText(),
		CountdownSeconds: t.countdown,
		OriginalSeconds:  t.original,
		Pause:            t.pause,
		CountingDown:     t.countingDown,
		Finished:         t.finished,
		HasUsedLunch:     t.hasUsedLunch,
		Meta:             t.meta,
		Bonus:            t.bonus,
		Headcount:        t.ledger.Headcount(),
		ActiveWorkers:    t.ledger.ActiveIDs(),
		Workers:          t.ledger.Workers(),
		PauseCount:       t.journal.CountEvents(session.EventPause),
		LunchCount:       t.journal.CountEvents(session.EventLunch),
		ScanCount:        t.journal.ScanCount(),
		PendingPreload:   t.pendingPreload,
	}
}

// WorkerName resolves a card UID to the display name the controller has
// published, falling back to the UID itself.
func (t *Tracker) WorkerName(id string) string {
	var name string

	t.do(func() {
		name = t.workerName(id)
	})

	return name
}

func (t *Tracker) workerName(id string) string {
	if name, ok := t.workerNames[id]; ok && name != "" {
		return name
	}

	return "ID: " + id
}

func (t *Tracker) timerText() string {
	return timeutil.FormatSigned(t.countdown)
}

func (t *Tracker) logger() *slog.Logger {
	return t.Opts.Logger
}
