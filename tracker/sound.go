package tracker

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/Make-USA-LLC/floortrack/config"
)

// Floor feedback sounds, resolved against the configured sound directory.
const (
	soundBuzzer   = "buzzer"
	soundRegister = "cash_register"
	soundChime    = "chime"
)

var errInvalidSoundFormat = errors.New(
	"sound file must be in mp3, ogg, flac, or wav format",
)

// Notifier plays floor feedback sounds and raises desktop notifications.
// Both are fire-and-forget: a kiosk without speakers or a notification
// daemon must keep tracking regardless.
type Notifier struct {
	cfg  config.SoundConfig
	diag *slog.Logger

	initOnce sync.Once
	initErr  error
}

// NewNotifier returns a notifier for the configured sound settings.
func NewNotifier(cfg config.SoundConfig, diag *slog.Logger) *Notifier {
	return &Notifier{cfg: cfg, diag: diag}
}

// Play plays the named sound asynchronously. A missing file or broken audio
// device is logged and otherwise ignored.
func (n *Notifier) Play(name string) {
	if !n.cfg.Enabled {
		return
	}

	go func() {
		err := n.play(name)
		if err != nil {
			n.diag.Warn(
				"sound playback failed",
				slog.String("sound", name),
				slog.Any("error", err),
			)
		}
	}()
}

func (n *Notifier) play(name string) error {
	stream, format, err := n.prepSoundStream(name)
	if err != nil {
		return err
	}

	defer stream.Close()

	n.initOnce.Do(func() {
		bufferSize := 10

		n.initErr = speaker.Init(
			format.SampleRate,
			format.SampleRate.N(time.Duration(int(time.Second)/bufferSize)),
		)
	})

	if n.initErr != nil {
		return n.initErr
	}

	done := make(chan bool)

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		done <- true
	})))

	<-done

	return nil
}

// prepSoundStream opens and decodes the named sound. Without an extension,
// the file is treated as OGG.
func (n *Notifier) prepSoundStream(
	name string,
) (beep.StreamSeekCloser, beep.Format, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		name += ".ogg"
		ext = ".ogg"
	}

	f, err := os.Open(filepath.Join(n.cfg.Dir, name))
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch ext {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, errInvalidSoundFormat
	}

	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, err
	}

	return stream, format, nil
}

// Alert raises a desktop notification.
func (n *Notifier) Alert(title, msg string) {
	if !n.cfg.Notify {
		return
	}

	go func() {
		// pathToIcon is empty when the icon is not installed
		pathToIcon := filepath.Join(n.cfg.Dir, "icon.png")
		if _, err := os.Stat(pathToIcon); err != nil {
			pathToIcon = ""
		}

		err := beeep.Notify(title, msg, pathToIcon)
		if err != nil {
			n.diag.Warn("notification failed", slog.Any("error", err))
		}
	}()
}
