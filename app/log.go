package app

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Make-USA-LLC/floortrack/config"
)

// newLogger builds the diagnostic logger. Kiosks run unattended for weeks,
// so logs rotate on disk instead of going to the console the operator sees.
func newLogger(cfg *config.Config) *slog.Logger {
	w := &lumberjack.Logger{
		Filename:   cfg.System.LogPath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	logger := slog.New(slog.NewJSONHandler(w, nil)).With(
		slog.String("station", cfg.Station.ID),
	)

	slog.SetDefault(logger)

	return logger
}
