package app

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/Make-USA-LLC/floortrack/config"
	"github.com/Make-USA-LLC/floortrack/internal/session"
	"github.com/Make-USA-LLC/floortrack/internal/timeutil"
	"github.com/Make-USA-LLC/floortrack/internal/ui"
	"github.com/Make-USA-LLC/floortrack/store"
	"github.com/Make-USA-LLC/floortrack/tracker"
)

const kioskHelp = `Scan a badge (or type its UID) to clock a worker in or out.

Commands:
  /start            start a new session
  /claim            claim a session from the shared queue
  /pause <code>     pause the countdown
  /resume           resume after a pause or lunch break
  /lunch            start the lunch break
  /qc <crew|component> <code>   toggle a quality-control hold
  /tech <code> [machine line]   toggle a technician hold
  /save             save the session to the shared queue
  /finish           close out the session
  /reset            wipe the session
  /edit <uid> <minutes>         overwrite a worker's accrued minutes
  /bonus <reason>   cancel the session bonus
  /queue            list queued sessions
  /status           show the session state
  /help             show this help
  /quit             exit the kiosk`

// kioskLoop reads badge scans and slash commands from standard input until
// the operator quits or input ends.
func kioskLoop(t *tracker.Tracker, db store.DB, cfg *config.Config) error {
	pterm.Info.Printfln(
		"floortrack %s ready, type /help for commands", config.Version,
	)
	printStatus(t)

	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "/") {
			printScanFeedback(t, t.Scan(line))
			continue
		}

		quit := runKioskCommand(t, db, line)
		if quit {
			return nil
		}
	}

	return scanner.Err()
}

func runKioskCommand(t *tracker.Tracker, db store.DB, line string) (quit bool) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/start":
		startSession(t)

	case "/claim":
		claimFromQueue(t, db)

	case "/pause":
		if len(args) < 1 {
			pterm.Warning.Println("usage: /pause <code>")
			return false
		}

		if t.Pause(args[0]) {
			pterm.Success.Println("session paused")
		} else {
			pterm.Warning.Println("pause rejected")
		}

	case "/resume":
		printResumeFeedback(t.Resume())

	case "/lunch":
		printLunchFeedback(t.TakeLunch())

	case "/qc":
		if len(args) < 2 {
			pterm.Warning.Println("usage: /qc <crew|component> <code>")
			return false
		}

		kind := session.QCCrew
		if args[0] == "component" {
			kind = session.QCComponent
		}

		if t.ToggleQC(kind, args[1]) {
			pterm.Success.Println("QC hold toggled")
		} else {
			pterm.Warning.Println("QC toggle rejected")
		}

	case "/tech":
		if len(args) < 1 {
			pterm.Warning.Println("usage: /tech <code> [machine line]")
			return false
		}

		if t.ToggleTechnician(args[0], strings.Join(args[1:], " ")) {
			pterm.Success.Println("technician hold toggled")
		} else {
			pterm.Warning.Println("technician toggle rejected")
		}

	case "/save":
		printSaveFeedback(t.SaveToQueue())

	case "/finish":
		if confirm("Close out this session?") {
			t.Finish()
			pterm.Success.Println("session finished")
		}

	case "/reset":
		if confirm("Wipe the session and start over?") {
			t.ResetData()
			pterm.Success.Println("session reset")
		}

	case "/edit":
		if len(args) < 2 {
			pterm.Warning.Println("usage: /edit <uid> <minutes>")
			return false
		}

		minutes, err := strconv.ParseFloat(args[1], 64)
		if err != nil || minutes < 0 {
			pterm.Warning.Println("minutes must be a non-negative number")
			return false
		}

		if t.EditWorkerMinutes(args[0], minutes) {
			pterm.Success.Printfln("%s set to %.1f minutes", t.WorkerName(args[0]), minutes)
		} else {
			pterm.Warning.Println("no such worker on this session")
		}

	case "/bonus":
		if len(args) < 1 {
			pterm.Warning.Println("usage: /bonus <reason>")
			return false
		}

		t.CancelBonus(strings.Join(args, " "))
		pterm.Success.Println("bonus cancelled")

	case "/queue":
		printQueue(db)

	case "/status":
		printStatus(t)

	case "/help":
		pterm.Println(kioskHelp)

	case "/quit", "/exit":
		return true

	default:
		pterm.Warning.Printfln("unknown command %s, type /help", cmd)
	}

	return false
}

func startSession(t *tracker.Tracker) {
	if s := t.Status(); s.PendingPreload != nil {
		q := fmt.Sprintf(
			"Arm the preloaded %s budget?",
			timeutil.FormatSigned(s.PendingPreload.Seconds),
		)
		if confirm(q) && t.ConfirmPreload() {
			pterm.Success.Printfln("countdown started at %s", t.Status().TimerText)
			return
		}
	}

	hours, minutes, meta, err := promptSession()
	if err != nil {
		pterm.Warning.Printfln("session not started: %v", err)
		return
	}

	t.StartSession(hours, minutes, 0, meta)
	pterm.Success.Printfln("countdown started at %s", t.Status().TimerText)
}

func claimFromQueue(t *tracker.Tracker, db store.DB) {
	items, err := db.QueueItems()
	if err != nil {
		pterm.Error.Printfln("unable to read the queue: %v", err)
		return
	}

	if len(items) == 0 {
		pterm.Info.Println("the queue is empty")
		return
	}

	item, ok := promptQueuePick(items)
	if !ok {
		return
	}

	if item.Meta.Leader == "" {
		leader, err := promptLeader()
		if err != nil {
			pterm.Warning.Printfln("claim cancelled: %v", err)
			return
		}

		item.Meta.Leader = leader
	}

	err = t.StartFromQueue(item)
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	pterm.Success.Printfln(
		"%s resumed with %s remaining",
		item.Meta.Project,
		t.Status().TimerText,
	)
}

func printStatus(t *tracker.Tracker) {
	s := t.Status()

	state := "running"

	switch {
	case s.Finished:
		state = "finished"
	case s.Pause.Paused():
		state = string(s.Pause.Kind)
	case !s.CountingDown:
		state = "idle"
	}

	workers := make([]string, 0, len(s.ActiveWorkers))
	for _, id := range s.ActiveWorkers {
		workers = append(workers, t.WorkerName(id))
	}

	data := [][]string{
		{"Field", "Value"},
		{"Project", s.Meta.Project},
		{"State", state},
		{"Remaining", colorTimer(s)},
		{"Budget", fmt.Sprintf("%d sec", s.OriginalSeconds)},
		{"On the floor", strings.Join(workers, ", ")},
		{"Bonus", s.Bonus.Status()},
	}

	if s.PendingPreload != nil {
		data = append(data, []string{
			"Preloaded", fmt.Sprintf("%d sec, /start to arm", s.PendingPreload.Seconds),
		})
	}

	ui.PrintTable(data, os.Stdout)
}

func colorTimer(s tracker.Status) string {
	switch {
	case s.CountdownSeconds <= 0:
		return ui.Red(s.TimerText)
	case s.CountdownSeconds < s.OriginalSeconds/10:
		return ui.Yellow(s.TimerText)
	default:
		return ui.Green(s.TimerText)
	}
}

func printQueue(db store.DB) {
	items, err := db.QueueItems()
	if err != nil {
		pterm.Error.Printfln("unable to read the queue: %v", err)
		return
	}

	if len(items) == 0 {
		pterm.Info.Println("the queue is empty")
		return
	}

	data := [][]string{
		{"#", "Company", "Project", "Remaining"},
	}

	for i, item := range items {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			item.Meta.Company,
			item.Meta.Project,
			fmt.Sprintf("%d sec", item.Seconds),
		})
	}

	ui.PrintTable(data, os.Stdout)
}

func printResumeFeedback(fb session.ResumeFeedback) {
	switch fb {
	case session.ResumeOK:
		pterm.Success.Println("session resumed")
	case session.ResumeIgnoredGated:
		pterm.Warning.Println("this hold can only be released with its own code")
	case session.ResumeIgnoredFinished:
		pterm.Warning.Println("the session is finished")
	}
}

func printLunchFeedback(fb session.LunchFeedback) {
	switch fb {
	case session.LunchStarted:
		pterm.Success.Println("lunch break started")
	case session.LunchIgnoredPaused:
		pterm.Warning.Println("lunch rejected: the session is paused")
	case session.LunchIgnoredNoWorkers:
		pterm.Warning.Println("lunch rejected: nobody is clocked in")
	case session.LunchIgnoredUsed:
		pterm.Warning.Println("lunch rejected: the break was already taken this shift")
	case session.LunchIgnoredFinished:
		pterm.Warning.Println("lunch rejected: the session is finished")
	}
}

func printSaveFeedback(fb session.SaveFeedback) {
	switch fb {
	case session.SaveQueued:
		pterm.Success.Println("session saved to the queue")
	case session.SaveMissingMetadata:
		pterm.Warning.Println("set the company and project before saving")
	case session.SaveFailed:
		pterm.Error.Println("saving to the queue failed, see the log")
	}
}
