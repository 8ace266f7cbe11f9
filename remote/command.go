package remote

import (
	"strconv"
	"strings"
)

// Action is the verb of an externally-issued command.
type Action string

const (
	ActionPreload     Action = "PRELOAD"
	ActionToggle      Action = "TOGGLE"
	ActionLunch       Action = "LUNCH"
	ActionSave        Action = "SAVE"
	ActionReset       Action = "RESET"
	ActionSetTime     Action = "SET_TIME"
	ActionFinish      Action = "FINISH"
	ActionClockOut    Action = "CLOCK_OUT"
	ActionEditWorker  Action = "EDIT_WORKER"
	ActionCancelBonus Action = "CANCEL_BONUS"
	ActionQCCrew      Action = "QC_CREW"
	ActionQCComponent Action = "QC_COMPONENT"
	ActionTechnician  Action = "TECHNICIAN"
)

// Command is a parsed remote command. Only the fields relevant to the
// action are populated.
type Command struct {
	Action  Action
	Seconds int     // PRELOAD, SET_TIME, RESET with a time argument
	HasTime bool    // distinguishes RESET from RESET|H:M:S
	CardID  string  // CLOCK_OUT, EDIT_WORKER
	Minutes float64 // EDIT_WORKER
	Line    string  // TECHNICIAN
}

// ParseCommand parses the pipe-delimited remote command syntax
// (ACTION or ACTION|ARG1|ARG2|...). It reports false for an empty, unknown,
// or malformed command; malformed input must never propagate further than
// this parser.
func ParseCommand(raw string) (Command, bool) {
	parts := splitCommand(raw)
	if len(parts) == 0 {
		return Command{}, false
	}

	cmd := Command{Action: Action(parts[0])}
	args := parts[1:]

	switch cmd.Action {
	case ActionToggle, ActionLunch, ActionSave, ActionFinish,
		ActionCancelBonus, ActionQCCrew, ActionQCComponent:
		return cmd, true

	case ActionTechnician:
		if len(args) > 0 {
			cmd.Line = args[0]
		}

		return cmd, true

	case ActionPreload, ActionSetTime:
		if len(args) < 1 {
			return Command{}, false
		}

		secs, ok := parseHMS(args[0])
		if !ok {
			return Command{}, false
		}

		cmd.Seconds = secs
		cmd.HasTime = true

		return cmd, true

	case ActionReset:
		if len(args) == 0 {
			return cmd, true
		}

		secs, ok := parseHMS(args[0])
		if !ok {
			return Command{}, false
		}

		cmd.Seconds = secs
		cmd.HasTime = true

		return cmd, true

	case ActionClockOut:
		if len(args) < 1 || args[0] == "" {
			return Command{}, false
		}

		cmd.CardID = args[0]

		return cmd, true

	case ActionEditWorker:
		if len(args) < 2 || args[0] == "" {
			return Command{}, false
		}

		minutes, err := strconv.ParseFloat(args[1], 64)
		if err != nil || minutes < 0 {
			return Command{}, false
		}

		cmd.CardID = args[0]
		cmd.Minutes = minutes

		return cmd, true

	default:
		return Command{}, false
	}
}

func splitCommand(raw string) []string {
	var parts []string

	for _, p := range strings.Split(raw, "|") {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return parts
}

// parseHMS parses an H:M:S time argument into total seconds.
func parseHMS(s string) (int, bool) {
	fields := strings.Split(s, ":")
	if len(fields) != 3 {
		return 0, false
	}

	h, err := strconv.Atoi(fields[0])
	if err != nil || h < 0 {
		return 0, false
	}

	m, err := strconv.Atoi(fields[1])
	if err != nil || m < 0 {
		return 0, false
	}

	sec, err := strconv.Atoi(fields[2])
	if err != nil || sec < 0 {
		return 0, false
	}

	return h*3600 + m*60 + sec, true
}
