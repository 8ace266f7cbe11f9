package config

import "errors"

var (
	errInvalidWindow = errors.New(
		"invalid time window: expected HH:MM-HH:MM",
	)
	errInvalidClockTime = errors.New(
		"invalid time of day: expected HH:MM",
	)
)
