package remote

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCommand(t *testing.T) {
	testCases := []struct {
		Name     string
		Raw      string
		Expected Command
		OK       bool
	}{
		{
			Name:     "bare toggle",
			Raw:      "TOGGLE",
			Expected: Command{Action: ActionToggle},
			OK:       true,
		},
		{
			Name:     "preload with time",
			Raw:      "PRELOAD|2:30:00",
			Expected: Command{Action: ActionPreload, Seconds: 9000, HasTime: true},
			OK:       true,
		},
		{
			Name: "preload without time is malformed",
			Raw:  "PRELOAD",
			OK:   false,
		},
		{
			Name:     "reset without time",
			Raw:      "RESET",
			Expected: Command{Action: ActionReset},
			OK:       true,
		},
		{
			Name:     "reset with time",
			Raw:      "RESET|0:45:30",
			Expected: Command{Action: ActionReset, Seconds: 2730, HasTime: true},
			OK:       true,
		},
		{
			Name: "set time with non-numeric part",
			Raw:  "SET_TIME|1:xx:00",
			OK:   false,
		},
		{
			Name: "set time with two parts",
			Raw:  "SET_TIME|1:30",
			OK:   false,
		},
		{
			Name:     "clock out a worker",
			Raw:      "CLOCK_OUT|04A1",
			Expected: Command{Action: ActionClockOut, CardID: "04A1"},
			OK:       true,
		},
		{
			Name: "clock out without a card",
			Raw:  "CLOCK_OUT",
			OK:   false,
		},
		{
			Name:     "edit worker minutes",
			Raw:      "EDIT_WORKER|04A1|125.5",
			Expected: Command{Action: ActionEditWorker, CardID: "04A1", Minutes: 125.5},
			OK:       true,
		},
		{
			Name: "edit worker with non-numeric minutes",
			Raw:  "EDIT_WORKER|04A1|lots",
			OK:   false,
		},
		{
			Name: "edit worker with negative minutes",
			Raw:  "EDIT_WORKER|04A1|-5",
			OK:   false,
		},
		{
			Name:     "cancel bonus",
			Raw:      "CANCEL_BONUS",
			Expected: Command{Action: ActionCancelBonus},
			OK:       true,
		},
		{
			Name:     "qc crew hold",
			Raw:      "QC_CREW",
			Expected: Command{Action: ActionQCCrew},
			OK:       true,
		},
		{
			Name:     "technician hold with line",
			Raw:      "TECHNICIAN|Line 4",
			Expected: Command{Action: ActionTechnician, Line: "Line 4"},
			OK:       true,
		},
		{
			Name:     "technician hold without line",
			Raw:      "TECHNICIAN",
			Expected: Command{Action: ActionTechnician},
			OK:       true,
		},
		{
			Name: "unknown action",
			Raw:  "EXPLODE",
			OK:   false,
		},
		{
			Name: "empty command",
			Raw:  "",
			OK:   false,
		},
		{
			Name:     "empty segments are dropped",
			Raw:      "LUNCH||",
			Expected: Command{Action: ActionLunch},
			OK:       true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			got, ok := ParseCommand(tc.Raw)

			if ok != tc.OK {
				t.Fatalf("expected ok=%t, but got: %t", tc.OK, ok)
			}

			if !tc.OK {
				return
			}

			if diff := cmp.Diff(tc.Expected, got); diff != "" {
				t.Errorf("command mismatch:\n%s", diff)
			}
		})
	}
}
