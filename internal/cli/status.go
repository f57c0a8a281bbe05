package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jkallio/pomodoro-cli/internal/status"
	"github.com/jkallio/pomodoro-cli/internal/timer"
)

func NewStatusCmd(deps *Dependencies) *cobra.Command {
	var format string

	names := make([]string, len(status.Formats))
	for i, f := range status.Formats {
		names[i] = string(f)
	}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the time left",
		Long:  "Print the time left. The json format is meant for status-bar widgets.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := status.ParseFormat(format)
			if err != nil {
				return err
			}
			rec, err := deps.App.Status()
			if err != nil {
				return err
			}
			out, err := status.Render(rec, deps.App.Now(), f, deps.App.Prefs.TimeFormat)
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.Out, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(status.FormatHuman), "Output format: "+strings.Join(names, ", "))
	return cmd
}

func NewWaitCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "wait",
		Short: "Block until the timer finishes",
		Long:  "Block until the timer finishes. Press q or esc to stop waiting; the timer keeps running.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWait(deps)
		},
	}
}

func runWait(deps *Dependencies) error {
	res, err := deps.Wait(deps.App, deps.App.Prefs.TimeFormat)
	if err != nil {
		return err
	}
	f := formatter(deps)
	switch {
	case res.Cancelled:
		f.Info("Stopped waiting; the timer is still " + strings.ToLower(res.Record.State.String()))
	case res.Record.State == timer.Finished:
		f.Success("Time's up")
	}
	return nil
}
