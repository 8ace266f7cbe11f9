package tracker

import (
	"log/slog"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// runFinishHook executes the configured finish_cmd with the session summary
// in its environment. Hook failures never affect the session.
func (t *Tracker) runFinishHook() {
	hook := t.Opts.Config.System.FinishCmd
	if hook == "" {
		return
	}

	cmdSlice, err := shellquote.Split(hook)
	if err != nil {
		t.logger().Error("unable to parse finish_cmd option", slog.Any("error", err))
		return
	}

	if len(cmdSlice) == 0 {
		return
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	env := append(
		os.Environ(),
		"FLOORTRACK_COMPANY="+t.meta.Company,
		"FLOORTRACK_PROJECT="+t.meta.Project,
		"FLOORTRACK_LEADER="+t.meta.Leader,
		"FLOORTRACK_REMAINING="+t.timerText(),
		"FLOORTRACK_BONUS="+t.bonus.Status(),
	)

	go func() {
		cmd := exec.Command(name, args...)
		cmd.Env = env
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		err := cmd.Run()
		if err != nil {
			t.logger().Error("finish_cmd failed", slog.Any("error", err))
		}
	}()
}
