// Package app assembles the floortrack command-line interface.
package app

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/Make-USA-LLC/floortrack/config"
	"github.com/Make-USA-LLC/floortrack/internal/ui"
)

const envNoColor = "NO_COLOR"

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the floortrack app instance.
func Get() *cli.App {
	floortrackApp := &cli.App{
		Name: "floortrack",
		Usage: `
		Floortrack is a production-floor kiosk that tracks work sessions against
		a time budget. Badge scans clock workers in and out, the budget drains in
		proportion to how many people are on the job, and every session mirrors
		to a fleet controller for remote supervision.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Print the state of the persisted session",
				Action: statusAction,
				Flags:  []cli.Flag{configFlag, dbFlag},
			},
			{
				Name:   "queue",
				Usage:  "List sessions saved to the shared queue",
				Action: queueAction,
				Flags:  []cli.Flag{configFlag, dbFlag},
			},
			{
				Name:   "events",
				Usage:  "Print the session audit trail",
				Action: eventsAction,
				Flags:  []cli.Flag{configFlag, dbFlag, sinceFlag},
			},
			{
				Name:   "reports",
				Usage:  "List archived session reports",
				Action: reportsAction,
				Flags:  []cli.Flag{configFlag, dbFlag},
			},
		},
		Flags: []cli.Flag{
			stationFlag,
			configFlag,
			dbFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
	}

	return floortrackApp
}

func beforeAction(ctx *cli.Context) error {
	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	ui.DarkTheme = true

	return nil
}
