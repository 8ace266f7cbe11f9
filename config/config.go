// Package config is responsible for setting the program config from
// the config file and command-line arguments
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"

	"github.com/Make-USA-LLC/floortrack/internal/timeutil"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Station     StationConfig
		Credentials CredentialConfig
		Lunch       LunchConfig
		Shift       ShiftConfig
		Sync        SyncConfig
		Sound       SoundConfig
		System      SystemConfig
	}

	// StationConfig identifies this kiosk on the shared remote store.
	StationConfig struct {
		ID string
	}

	// CredentialConfig holds the codes gating pause entry and exit.
	CredentialConfig struct {
		PausePIN string
		QCPIN    string
		TechPIN  string
	}

	// LunchConfig holds the lunch detection windows and the length of a
	// manually requested lunch break.
	LunchConfig struct {
		Windows  []timeutil.Window
		Duration time.Duration
	}

	// ShiftConfig holds the shift start times that re-arm the once-per-shift
	// lunch allowance.
	ShiftConfig struct {
		Starts []timeutil.ClockTime
	}

	// SyncConfig holds remote synchronization settings.
	SyncConfig struct {
		PushInterval time.Duration
	}

	// SoundConfig holds audio feedback settings.
	SoundConfig struct {
		Enabled bool
		Dir     string
		Notify  bool
	}

	// SystemConfig holds paths and hooks.
	SystemConfig struct {
		ConfigPath string
		DBPath     string
		LogPath    string
		FinishCmd  string
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.1"

var (
	configDir      = "floortrack"
	configFileName = "config.yml"
	dbFileName     = "floortrack.db"
	logFileName    = "floortrack.log"
)

func init() {
	env := strings.TrimSpace(os.Getenv("FLOORTRACK_ENV"))
	if env != "" {
		configFileName = fmt.Sprintf("config_%s.yml", env)
		dbFileName = fmt.Sprintf("floortrack_%s.db", env)
		logFileName = fmt.Sprintf("floortrack_%s.log", env)
	}
}

// Dir returns the program's configuration directory name.
func Dir() string {
	return configDir
}

// New builds a Config from defaults and the provided options.
func New(opts ...Option) (*Config, error) {
	c := defaultConfig()

	if err := resolvePaths(c); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func defaultConfig() *Config {
	return &Config{
		Credentials: CredentialConfig{
			PausePIN: "340340",
			QCPIN:    "555555",
			TechPIN:  "777777",
		},
		Lunch: LunchConfig{
			Windows: []timeutil.Window{
				{Start: timeutil.NewClockTime(11, 30), End: timeutil.NewClockTime(12, 0)},
				{Start: timeutil.NewClockTime(18, 30), End: timeutil.NewClockTime(19, 0)},
				{Start: timeutil.NewClockTime(3, 0), End: timeutil.NewClockTime(3, 30)},
			},
			Duration: 30 * time.Minute,
		},
		Shift: ShiftConfig{
			Starts: []timeutil.ClockTime{
				timeutil.NewClockTime(6, 0),
				timeutil.NewClockTime(14, 0),
				timeutil.NewClockTime(22, 0),
			},
		},
		Sync: SyncConfig{
			PushInterval: 10 * time.Second,
		},
		Sound: SoundConfig{
			Enabled: true,
			Notify:  true,
		},
	}
}

func resolvePaths(c *Config) error {
	configPath, err := xdg.ConfigFile(filepath.Join(configDir, configFileName))
	if err != nil {
		return fmt.Errorf("unable to resolve config path: %w", err)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		return fmt.Errorf("unable to resolve data dir: %w", err)
	}

	c.System.ConfigPath = configPath
	c.System.DBPath = filepath.Join(dataDir, dbFileName)
	c.System.LogPath = filepath.Join(dataDir, logFileName)
	c.Sound.Dir = filepath.Join(dataDir, "sounds")

	return nil
}

// WithStation overrides the station identity.
func WithStation(id string) Option {
	return func(c *Config) error {
		if id != "" {
			c.Station.ID = id
		}

		return nil
	}
}

// WithDBPath overrides the database file path.
func WithDBPath(path string) Option {
	return func(c *Config) error {
		if path != "" {
			c.System.DBPath = path
		}

		return nil
	}
}

// Warn prints a configuration warning to the operator.
func Warn(msg string) {
	pterm.Warning.Println(msg)
}
