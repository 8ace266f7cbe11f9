package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/Make-USA-LLC/floortrack/internal/timeutil"
)

const (
	keyStationID     = "station.id"
	keyPausePIN      = "credentials.pause_pin"
	keyQCPIN         = "credentials.qc_pin"
	keyTechPIN       = "credentials.tech_pin"
	keyLunchWindows  = "lunch.windows"
	keyLunchDuration = "lunch.duration"
	keyShiftStarts   = "shift.starts"
	keyPushInterval  = "sync.push_interval"
	keySoundEnabled  = "sound.enabled"
	keySoundNotify   = "sound.notify"
	keyFinishCmd     = "hooks.finish_cmd"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// config file, writing a default file on first run. An empty path uses the
// resolved default location.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		if configPath == "" {
			configPath = c.System.ConfigPath
		}

		c.System.ConfigPath = configPath

		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setDefaults(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config file failed: %w", err)
		}

		if err := v.WriteConfig(); err != nil {
			return fmt.Errorf("writing default config failed: %w", err)
		}

		return loadViperConfig(v, c)
	}
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault(keyStationID, c.Station.ID)
	v.SetDefault(keyPausePIN, c.Credentials.PausePIN)
	v.SetDefault(keyQCPIN, c.Credentials.QCPIN)
	v.SetDefault(keyTechPIN, c.Credentials.TechPIN)
	v.SetDefault(keyLunchWindows, formatWindows(c.Lunch.Windows))
	v.SetDefault(keyLunchDuration, c.Lunch.Duration.String())
	v.SetDefault(keyShiftStarts, formatClockTimes(c.Shift.Starts))
	v.SetDefault(keyPushInterval, c.Sync.PushInterval.String())
	v.SetDefault(keySoundEnabled, c.Sound.Enabled)
	v.SetDefault(keySoundNotify, c.Sound.Notify)
	v.SetDefault(keyFinishCmd, c.System.FinishCmd)
}

func loadViperConfig(v *viper.Viper, c *Config) error {
	c.Station.ID = v.GetString(keyStationID)
	c.Credentials.PausePIN = v.GetString(keyPausePIN)
	c.Credentials.QCPIN = v.GetString(keyQCPIN)
	c.Credentials.TechPIN = v.GetString(keyTechPIN)
	c.Lunch.Duration = v.GetDuration(keyLunchDuration)
	c.Sync.PushInterval = v.GetDuration(keyPushInterval)
	c.Sound.Enabled = v.GetBool(keySoundEnabled)
	c.Sound.Notify = v.GetBool(keySoundNotify)
	c.System.FinishCmd = v.GetString(keyFinishCmd)

	windows, err := ParseWindows(v.GetStringSlice(keyLunchWindows))
	if err != nil {
		return err
	}

	c.Lunch.Windows = windows

	starts, err := ParseClockTimes(v.GetStringSlice(keyShiftStarts))
	if err != nil {
		return err
	}

	c.Shift.Starts = starts

	return nil
}

// ParseWindows parses "HH:MM-HH:MM" strings into daily windows.
func ParseWindows(specs []string) ([]timeutil.Window, error) {
	windows := make([]timeutil.Window, 0, len(specs))

	for _, spec := range specs {
		start, end, ok := strings.Cut(spec, "-")
		if !ok {
			return nil, fmt.Errorf("%w: %q", errInvalidWindow, spec)
		}

		s, err := parseClockTime(start)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errInvalidWindow, spec)
		}

		e, err := parseClockTime(end)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errInvalidWindow, spec)
		}

		windows = append(windows, timeutil.Window{Start: s, End: e})
	}

	return windows, nil
}

// ParseClockTimes parses "HH:MM" strings into times of day.
func ParseClockTimes(specs []string) ([]timeutil.ClockTime, error) {
	times := make([]timeutil.ClockTime, 0, len(specs))

	for _, spec := range specs {
		t, err := parseClockTime(spec)
		if err != nil {
			return nil, err
		}

		times = append(times, t)
	}

	return times, nil
}

func parseClockTime(s string) (timeutil.ClockTime, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", errInvalidClockTime, s)
	}

	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", errInvalidClockTime, s)
	}

	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", errInvalidClockTime, s)
	}

	return timeutil.NewClockTime(hour, minute), nil
}

func formatWindows(windows []timeutil.Window) []string {
	specs := make([]string, 0, len(windows))

	for _, w := range windows {
		specs = append(specs, w.Start.String()+"-"+w.End.String())
	}

	return specs
}

func formatClockTimes(times []timeutil.ClockTime) []string {
	specs := make([]string, 0, len(times))

	for _, t := range times {
		specs = append(specs, t.String())
	}

	return specs
}
