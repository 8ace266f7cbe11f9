package app

import "github.com/urfave/cli/v2"

var (
	stationFlag = &cli.StringFlag{
		Name:    "station",
		Aliases: []string{"s"},
		Usage:   "Station identity on the shared remote store",
	}

	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Use a different config file",
	}

	dbFlag = &cli.StringFlag{
		Name:  "db",
		Usage: "Use a different database file",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only show events at or after this time (e.g. 'yesterday', '2 hours ago')",
	}
)
