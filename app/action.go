package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/Make-USA-LLC/floortrack/config"
	"github.com/Make-USA-LLC/floortrack/internal/models"
	"github.com/Make-USA-LLC/floortrack/internal/session"
	"github.com/Make-USA-LLC/floortrack/internal/timeutil"
	"github.com/Make-USA-LLC/floortrack/internal/ui"
	"github.com/Make-USA-LLC/floortrack/remote"
	"github.com/Make-USA-LLC/floortrack/report"
	"github.com/Make-USA-LLC/floortrack/store"
	"github.com/Make-USA-LLC/floortrack/tracker"
)

const eventTimeFormat = "Jan 2 03:04:05 PM"

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	return config.New(
		config.WithViperConfig(ctx.String("config")),
		config.WithStation(ctx.String("station")),
		config.WithDBPath(ctx.String("db")),
	)
}

// defaultAction runs the kiosk: the tracker loop in the background, badge
// scans and slash commands from standard input in the foreground.
func defaultAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)

	dbClient, err := store.NewClient(cfg.System.DBPath)
	if err != nil {
		return err
	}

	defer dbClient.Close()

	var remoteStore remote.Store
	if cfg.Station.ID != "" {
		// TODO: plug in the fleet transport once the controller endpoint
		// is provisioned; the in-process store only serves a single kiosk
		remoteStore = remote.NewMemory()
	}

	t, err := tracker.New(tracker.Options{
		Config: cfg,
		DB:     dbClient,
		Remote: remoteStore,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	dbClient.SubscribeQueue(func(items []models.QueueItem) {
		pterm.Info.Printfln("shared queue now holds %d session(s)", len(items))
	})

	runCtx, cancel := context.WithCancel(ctx.Context)
	defer cancel()

	runErr := make(chan error, 1)

	go func() {
		runErr <- t.Run(runCtx)
	}()

	kioskErr := kioskLoop(t, dbClient, cfg)

	cancel()

	if err := <-runErr; err != nil {
		return err
	}

	return kioskErr
}

func statusAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	dbClient, err := store.NewClient(cfg.System.DBPath)
	if err != nil {
		return err
	}

	defer dbClient.Close()

	snap, err := dbClient.LoadSnapshot()
	if err != nil {
		return err
	}

	if snap == nil {
		pterm.Info.Println("no session has been recorded on this kiosk")
		return nil
	}

	active := 0

	for _, w := range snap.Workers {
		if _, on := w.Clock.On(); on {
			active++
		}
	}

	state := "running"

	switch {
	case snap.Finished:
		state = "finished"
	case snap.Pause.Paused():
		state = string(snap.Pause.Kind)
	case !snap.CountingDown:
		state = "idle"
	}

	data := [][]string{
		{"Field", "Value"},
		{"Project", snap.Meta.Project},
		{"Company", snap.Meta.Company},
		{"Leader", snap.Meta.Leader},
		{"State", state},
		{"Remaining", timeutil.FormatSigned(snap.CountdownSeconds)},
		{"Budget", timeutil.FormatSigned(snap.OriginalSeconds)},
		{"Active workers", fmt.Sprintf("%d of %d", active, len(snap.Workers))},
		{"Bonus", snap.Bonus.Status()},
	}

	ui.PrintTable(data, os.Stdout)

	return nil
}

func queueAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	dbClient, err := store.NewClient(cfg.System.DBPath)
	if err != nil {
		return err
	}

	defer dbClient.Close()

	items, err := dbClient.QueueItems()
	if err != nil {
		return err
	}

	if len(items) == 0 {
		pterm.Info.Println("the queue is empty")
		return nil
	}

	data := [][]string{
		{"#", "Company", "Project", "Remaining", "Saved"},
	}

	for i, item := range items {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			item.Meta.Company,
			item.Meta.Project,
			timeutil.FormatSigned(item.Seconds),
			item.CreatedAt.Format(eventTimeFormat),
		})
	}

	ui.PrintTable(data, os.Stdout)

	return nil
}

func eventsAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	dbClient, err := store.NewClient(cfg.System.DBPath)
	if err != nil {
		return err
	}

	defer dbClient.Close()

	snap, err := dbClient.LoadSnapshot()
	if err != nil {
		return err
	}

	if snap == nil {
		pterm.Info.Println("no session has been recorded on this kiosk")
		return nil
	}

	var since time.Time

	if s := ctx.String("since"); s != "" {
		dt, err := dateparser.Parse(&dateparser.Configuration{
			CurrentTime: time.Now(),
		}, s)
		if err != nil {
			return fmt.Errorf("unable to parse --since: %w", err)
		}

		since = dt.Time
	}

	data := [][]string{
		{"Time", "Event", "Detail"},
	}

	for _, ev := range snap.Log.EventsSince(since) {
		data = append(data, []string{
			ev.Timestamp.Format(eventTimeFormat),
			string(ev.Type),
			ev.Value,
		})
	}

	for _, ev := range snap.Log.Scans {
		if !since.IsZero() && ev.Timestamp.Before(since) {
			continue
		}

		data = append(data, []string{
			ev.Timestamp.Format(eventTimeFormat),
			string(ev.Action),
			ev.CardID,
		})
	}

	if len(data) == 1 {
		pterm.Info.Println("no events in the selected range")
		return nil
	}

	ui.PrintTable(data, os.Stdout)

	return nil
}

func reportsAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	dbClient, err := store.NewClient(cfg.System.DBPath)
	if err != nil {
		return err
	}

	defer dbClient.Close()

	reports, err := dbClient.Reports()
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		pterm.Info.Println("no reports have been archived")
		return nil
	}

	for i := range reports {
		report.Print(os.Stdout, &reports[i])
	}

	return nil
}

func printScanFeedback(t *tracker.Tracker, fb session.ScanFeedback) {
	name := t.WorkerName(fb.CardID)

	switch fb.Kind {
	case session.ScanClockedIn:
		pterm.Success.Printfln("%s clocked in", ui.Green(name))
	case session.ScanClockedOut:
		pterm.Success.Printfln("%s clocked out", ui.Yellow(name))
	case session.ScanIgnoredPaused:
		pterm.Warning.Printfln("scan ignored: the session is paused")
	case session.ScanIgnoredFinished:
		pterm.Warning.Printfln("scan ignored: the session is finished")
	}
}
