package cli

import (
	"github.com/spf13/cobra"

	"github.com/jkallio/pomodoro-cli/internal/timer"
)

// transitionCmd builds a command that runs one timer transition.
func transitionCmd(deps *Dependencies, use, short string, fn func() (timer.Record, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := fn()
			if err != nil {
				return err
			}
			formatter(deps).Timer(rec, deps.App.Now())
			return nil
		},
	}
}

func NewPauseCmd(deps *Dependencies) *cobra.Command {
	return transitionCmd(deps, "pause", "Pause the running timer", func() (timer.Record, error) {
		return deps.App.Pause()
	})
}

func NewResumeCmd(deps *Dependencies) *cobra.Command {
	return transitionCmd(deps, "resume", "Resume a paused timer", func() (timer.Record, error) {
		return deps.App.Resume()
	})
}

func NewToggleCmd(deps *Dependencies) *cobra.Command {
	return transitionCmd(deps, "toggle", "Pause a running timer or resume a paused one", func() (timer.Record, error) {
		return deps.App.Toggle()
	})
}

func NewStopCmd(deps *Dependencies) *cobra.Command {
	return transitionCmd(deps, "stop", "Stop the timer without an alarm", func() (timer.Record, error) {
		return deps.App.Stop()
	})
}

func NewAddCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "add DURATION",
		Short: "Extend the running timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secs, err := parseDuration("add", args[0])
			if err != nil {
				return err
			}
			rec, err := deps.App.Add(secs)
			if err != nil {
				return err
			}
			formatter(deps).Timer(rec, deps.App.Now())
			return nil
		},
	}
}

func NewResetCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.App.Reset(); err != nil {
				return err
			}
			formatter(deps).Success("Timer reset")
			return nil
		},
	}
}
