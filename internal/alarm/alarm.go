// Package alarm announces a finished timer with a sound and an optional
// desktop notification. Both are best effort: failures are returned to the
// caller but never undo the finished state.
package alarm

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jkallio/pomodoro-cli/internal/duration"
	"github.com/jkallio/pomodoro-cli/internal/timer"
)

var (
	ErrAudio        = errors.New("alarm audio failed")
	ErrNotification = errors.New("desktop notification failed")
)

// Sounder plays the alarm sound and returns when it has finished.
type Sounder interface {
	Play() error
}

// Notifier shows a desktop notification.
type Notifier interface {
	Notify(title, message string) error
}

// Alarm combines a sound and a notification.
type Alarm struct {
	Sound    Sounder
	Notifier Notifier
	Log      *slog.Logger
}

// New builds an alarm using the audio and icon files found in dir, if any.
func New(dir string, log *slog.Logger) *Alarm {
	return &Alarm{
		Sound:    &Player{File: FindFile(dir, "alarm.mp3", "alarm.wav")},
		Notifier: &Desktop{Icon: FindFile(dir, "icon.png")},
		Log:      log,
	}
}

// Trigger announces rec. The notification is sent first so it is visible
// while the sound plays.
func (a *Alarm) Trigger(rec timer.Record) error {
	var errs []error
	sound, notifier := a.forRecord(rec)

	if rec.Notify && notifier != nil {
		title, body := notification(rec)
		if err := notifier.Notify(title, body); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", ErrNotification, err))
		}
	}

	if !rec.Silent && sound != nil {
		if err := sound.Play(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", ErrAudio, err))
		}
	}

	if a.Log != nil {
		a.Log.Debug("alarm triggered",
			slog.String("run_id", rec.ID),
			slog.Bool("silent", rec.Silent),
			slog.Bool("notify", rec.Notify),
			slog.Int("errors", len(errs)),
		)
	}
	return errors.Join(errs...)
}

// forRecord returns the sound and notifier for rec. Files named by a
// running profile replace the defaults.
func (a *Alarm) forRecord(rec timer.Record) (Sounder, Notifier) {
	sound, notifier := a.Sound, a.Notifier
	if p := rec.Plan; p != nil {
		if p.AlarmFile != "" {
			sound = &Player{File: p.AlarmFile}
		}
		if p.IconFile != "" {
			notifier = &Desktop{Icon: p.IconFile}
		}
	}
	return sound, notifier
}

func notification(rec timer.Record) (string, string) {
	title := "Pomodoro finished"
	if rec.Plan != nil {
		title = fmt.Sprintf("%s: step %d of %d finished", rec.Plan.Name, rec.Step+1, rec.Plan.Steps())
	}
	body := fmt.Sprintf("%s timer is up.", duration.Segmented(rec.Duration))
	if rec.Message != "" {
		body = rec.Message + "\n" + body
	}
	return title, body
}

// FindFile returns the first of names that exists in dir, or "".
func FindFile(dir string, names ...string) string {
	if dir == "" {
		return ""
	}
	for _, n := range names {
		p := filepath.Join(dir, n)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}
