package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jkallio/pomodoro-cli/internal/alarm"
	"github.com/jkallio/pomodoro-cli/internal/app"
	"github.com/jkallio/pomodoro-cli/internal/config"
	"github.com/jkallio/pomodoro-cli/internal/duration"
	"github.com/jkallio/pomodoro-cli/internal/output"
	"github.com/jkallio/pomodoro-cli/internal/store"
	"github.com/jkallio/pomodoro-cli/internal/timer"
	"github.com/jkallio/pomodoro-cli/internal/tui"
	"github.com/jkallio/pomodoro-cli/internal/version"
)

var errNoHistory = errors.New("history database unavailable")

// Dependencies are shared by all commands. App and Store are opened before
// the first command runs unless already set.
type Dependencies struct {
	Config *config.Config
	Out    io.Writer
	Err    io.Writer

	App   *app.App
	Store *store.Store
	Log   *slog.Logger

	Wait         func(src tui.StatusSource, style duration.Style) (tui.WaitResult, error)
	EditSettings func(store.Preferences) (store.Preferences, error)

	opened bool
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Err == nil {
		deps.Err = os.Stderr
	}
	if deps.Wait == nil {
		deps.Wait = func(src tui.StatusSource, style duration.Style) (tui.WaitResult, error) {
			return tui.Wait(src, style)
		}
	}
	if deps.EditSettings == nil {
		deps.EditSettings = tui.EditSettings
	}

	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "pomodoro-cli",
		Short:         "A pomodoro timer for the terminal and status bars",
		Long:          "Start, pause and stop a countdown timer that lives between invocations.\nThe status command prints the time left for use in status bars.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if deps.App != nil {
				return nil
			}
			level := deps.Config.LogLevel
			if cmd.Flags().Changed("log-level") {
				level = logLevel
			}
			return open(deps, level)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if deps.opened && deps.Store != nil {
				return deps.Store.Close()
			}
			return nil
		},
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.SetOut(deps.Out)
	rootCmd.SetErr(deps.Err)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")

	rootCmd.AddCommand(NewStartCmd(deps))
	rootCmd.AddCommand(NewAddCmd(deps))
	rootCmd.AddCommand(NewPauseCmd(deps))
	rootCmd.AddCommand(NewResumeCmd(deps))
	rootCmd.AddCommand(NewToggleCmd(deps))
	rootCmd.AddCommand(NewStopCmd(deps))
	rootCmd.AddCommand(NewResetCmd(deps))
	rootCmd.AddCommand(NewStatusCmd(deps))
	rootCmd.AddCommand(NewWaitCmd(deps))
	rootCmd.AddCommand(NewHistoryCmd(deps))
	rootCmd.AddCommand(NewReportCmd(deps))
	rootCmd.AddCommand(NewExportCmd(deps))
	rootCmd.AddCommand(NewSettingsCmd(deps))
	rootCmd.AddCommand(NewProfileCmd(deps))

	return rootCmd
}

// open wires the app from the config. A history database that cannot be
// opened disables history and settings but leaves the timer usable.
func open(deps *Dependencies, level string) error {
	cfg := deps.Config
	log, err := config.NewLogger(deps.Err, level)
	if err != nil {
		return err
	}
	deps.Log = log

	a := &app.App{
		Records: store.NewRecordFile(cfg.StateFile),
		Clock:   timer.SystemClock,
		Prefs:   store.DefaultPreferences(),
		Log:     log,
	}

	st, err := store.New(cfg.HistoryDB)
	if err != nil {
		log.Warn("history disabled", slog.String("path", cfg.HistoryDB), slog.Any("error", err))
	} else {
		deps.Store = st
		a.History = st
		prefs, err := st.Preferences()
		if err != nil {
			log.Warn("could not read settings", slog.Any("error", err))
		}
		a.Prefs = prefs
	}

	al := alarm.New(cfg.Dir, log)
	if cfg.AlarmFile != "" {
		al.Sound = &alarm.Player{File: cfg.AlarmFile}
	}
	if cfg.IconFile != "" {
		al.Notifier = &alarm.Desktop{Icon: cfg.IconFile}
	}
	a.Alarm = al

	deps.App = a
	deps.opened = true
	return nil
}

func formatter(deps *Dependencies) *output.Formatter {
	return output.NewFormatter(deps.Out, deps.App.Prefs.TimeFormat)
}

func requireStore(deps *Dependencies) (*store.Store, error) {
	if deps.Store == nil {
		return nil, errNoHistory
	}
	return deps.Store, nil
}

func parseDuration(flag, value string) (int64, error) {
	secs, err := duration.Parse(value)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", flag, err)
	}
	return secs, nil
}
