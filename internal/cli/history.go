package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jkallio/pomodoro-cli/internal/export"
	"github.com/jkallio/pomodoro-cli/internal/store"
	"github.com/jkallio/pomodoro-cli/internal/tui"
)

func NewHistoryCmd(deps *Dependencies) *cobra.Command {
	var limit int
	var completed bool
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent timer runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := requireStore(deps)
			if err != nil {
				return err
			}
			// Settle a finished timer so it shows up.
			if _, err := deps.App.Status(); err != nil {
				return err
			}
			if runID != "" {
				sess, err := st.GetSession(runID)
				if err != nil {
					return err
				}
				formatter(deps).Session(*sess)
				return nil
			}
			sessions, err := st.ListSessions(store.SessionFilter{CompletedOnly: completed, Limit: limit})
			if err != nil {
				return err
			}
			now := deps.App.Now()
			today, err := st.GetTodayTotal(now)
			if err != nil {
				return err
			}
			formatter(deps).Sessions(sessions, today, now)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&completed, "completed", false, "Only show runs that ran to the end")
	cmd.Flags().StringVar(&runID, "run", "", "Show a single run by its id, as written by export")
	return cmd
}

func NewReportCmd(deps *Dependencies) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Chart focus time per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := requireStore(deps)
			if err != nil {
				return err
			}
			from, to := tui.ReportRange(deps.App.Now(), days)
			summaries, err := st.GetDailySummary(from, to)
			if err != nil {
				return err
			}
			r := tui.Report{From: from, To: to, Summaries: summaries, Width: 80, Height: 12}
			fmt.Fprintln(deps.Out, r.View())
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days to chart")
	return cmd
}

func NewExportCmd(deps *Dependencies) *cobra.Command {
	var (
		format    string
		path      string
		days      int
		completed bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export timer history to csv, json or yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			st, err := requireStore(deps)
			if err != nil {
				return err
			}

			filter := store.SessionFilter{CompletedOnly: completed}
			if days > 0 {
				from := deps.App.Now().Add(-time.Duration(days) * 24 * time.Hour)
				filter.From = &from
			}
			sessions, err := st.ListSessions(filter)
			if err != nil {
				return err
			}

			if path == "" {
				path = "pomodoro-history." + string(f)
			}
			if err := export.Write(f, sessions, path); err != nil {
				return err
			}
			formatter(deps).Success(fmt.Sprintf("Exported %d sessions to %s", len(sessions), path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Export format: csv, json or yaml")
	cmd.Flags().StringVarP(&path, "output", "o", "", "Output file (default pomodoro-history.<format>)")
	cmd.Flags().IntVar(&days, "days", 0, "Only export the last N days (0 for all)")
	cmd.Flags().BoolVar(&completed, "completed", false, "Only export runs that ran to the end")
	return cmd
}
