package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/jkallio/pomodoro-cli/internal/duration"
	"github.com/jkallio/pomodoro-cli/internal/store"
)

// SettingsForm edits the stored preferences.
type SettingsForm struct {
	form *huh.Form

	// Form values as pointers (survive value copies)
	defaultDuration *string
	silent          *bool
	notify          *bool
	timeFormat      *string
}

func NewSettingsForm(p store.Preferences) *SettingsForm {
	dd := duration.Segmented(p.DefaultDuration)
	silent, notify := p.Silent, p.Notify
	tf := string(p.TimeFormat)

	s := &SettingsForm{
		defaultDuration: &dd,
		silent:          &silent,
		notify:          &notify,
		timeFormat:      &tf,
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default duration").
				Description("e.g. 25m, 1h30m, 45 or 00:50:00").
				Validate(validateDuration).
				Value(s.defaultDuration),
			huh.NewConfirm().Title("Silent alarm").Value(s.silent),
			huh.NewConfirm().Title("Desktop notification").Value(s.notify),
			huh.NewSelect[string]().Title("Time format").
				Options(
					huh.NewOption("1h 30m 10s", string(duration.StyleSegmented)),
					huh.NewOption("01:30:10", string(duration.StyleDigital)),
				).Value(s.timeFormat),
		).Title("Pomodoro"),
	).WithShowHelp(true).WithShowErrors(true)

	return s
}

func validateDuration(s string) error {
	secs, err := duration.Parse(s)
	if err != nil {
		return err
	}
	if secs <= 0 {
		return errors.New("duration must be positive")
	}
	return nil
}

// Form returns the underlying form.
func (s *SettingsForm) Form() *huh.Form { return s.form }

// Preferences converts the form values.
func (s *SettingsForm) Preferences() (store.Preferences, error) {
	secs, err := duration.Parse(*s.defaultDuration)
	if err != nil {
		return store.Preferences{}, fmt.Errorf("default duration: %w", err)
	}
	tf, err := duration.ParseStyle(*s.timeFormat)
	if err != nil {
		return store.Preferences{}, err
	}
	return store.Preferences{
		DefaultDuration: secs,
		Silent:          *s.silent,
		Notify:          *s.notify,
		TimeFormat:      tf,
	}, nil
}

// EditSettings runs the form and returns the edited preferences.
func EditSettings(p store.Preferences) (store.Preferences, error) {
	s := NewSettingsForm(p)
	if err := s.form.Run(); err != nil {
		return p, fmt.Errorf("settings form: %w", err)
	}
	return s.Preferences()
}
