package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Make-USA-LLC/floortrack/internal/timeutil"
)

func TestParseWindows(t *testing.T) {
	testCases := []struct {
		Name     string
		Specs    []string
		Expected []timeutil.Window
		WantErr  error
	}{
		{
			Name:  "valid windows",
			Specs: []string{"11:30-12:00", "22:00-03:00"},
			Expected: []timeutil.Window{
				{Start: timeutil.NewClockTime(11, 30), End: timeutil.NewClockTime(12, 0)},
				{Start: timeutil.NewClockTime(22, 0), End: timeutil.NewClockTime(3, 0)},
			},
		},
		{
			Name:    "missing separator",
			Specs:   []string{"11:30"},
			WantErr: errInvalidWindow,
		},
		{
			Name:    "non-numeric hour",
			Specs:   []string{"aa:30-12:00"},
			WantErr: errInvalidWindow,
		},
		{
			Name:    "hour out of range",
			Specs:   []string{"25:00-26:00"},
			WantErr: errInvalidWindow,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := ParseWindows(tc.Specs)

			if tc.WantErr != nil {
				if !errors.Is(err, tc.WantErr) {
					t.Fatalf("expected error %v, but got: %v", tc.WantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(tc.Expected, got); diff != "" {
				t.Errorf("window mismatch:\n%s", diff)
			}
		})
	}
}

func TestParseClockTimes(t *testing.T) {
	got, err := ParseClockTimes([]string{"06:00", "14:00", "22:00"})
	if err != nil {
		t.Fatal(err)
	}

	expected := []timeutil.ClockTime{
		timeutil.NewClockTime(6, 0),
		timeutil.NewClockTime(14, 0),
		timeutil.NewClockTime(22, 0),
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("clock time mismatch:\n%s", diff)
	}

	_, err = ParseClockTimes([]string{"6 am"})
	if !errors.Is(err, errInvalidClockTime) {
		t.Errorf("expected %v, but got: %v", errInvalidClockTime, err)
	}
}

func TestDefaultConfig(t *testing.T) {
	c := defaultConfig()

	if len(c.Lunch.Windows) != 3 {
		t.Errorf("expected 3 default lunch windows, but got: %d", len(c.Lunch.Windows))
	}

	if len(c.Shift.Starts) != 3 {
		t.Errorf("expected 3 default shift starts, but got: %d", len(c.Shift.Starts))
	}

	if c.Credentials.PausePIN == "" || c.Credentials.QCPIN == "" || c.Credentials.TechPIN == "" {
		t.Error("expected default credentials to be set")
	}
}
