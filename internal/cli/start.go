package cli

import (
	"github.com/spf13/cobra"

	"github.com/jkallio/pomodoro-cli/internal/app"
)

func NewStartCmd(deps *Dependencies) *cobra.Command {
	var (
		durationStr string
		addStr      string
		message     string
		silent      bool
		notify      bool
		wait        bool
		resume      bool
		profileName string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new timer",
		Long: "Start a new timer. Durations accept minutes (25), segments (1h30m, 45min 10s)\n" +
			"or clock notation (1:30:00). With --add a running timer is extended instead.\n" +
			"With --profile the profile's steps run one after another.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.StartRequest{Message: message, Wait: wait, Resume: resume}

			if cmd.Flags().Changed("duration") {
				secs, err := parseDuration("duration", durationStr)
				if err != nil {
					return err
				}
				req.Duration = &secs
			}
			if cmd.Flags().Changed("add") {
				secs, err := parseDuration("add", addStr)
				if err != nil {
					return err
				}
				req.Add = &secs
			}
			if profileName != "" {
				st, err := requireStore(deps)
				if err != nil {
					return err
				}
				p, err := st.GetProfile(profileName)
				if err != nil {
					return err
				}
				plan := p.Plan()
				req.Plan = &plan
				req.Silent, req.Notify = &p.Silent, &p.Notify
			}
			if cmd.Flags().Changed("silent") {
				req.Silent = &silent
			}
			if cmd.Flags().Changed("notify") {
				req.Notify = &notify
			}

			rec, err := deps.App.Start(req)
			if err != nil {
				return err
			}
			formatter(deps).Timer(rec, deps.App.Now())

			if wait {
				return runWait(deps)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&durationStr, "duration", "d", "", "Timer duration (default from settings)")
	cmd.Flags().StringVarP(&addStr, "add", "a", "", "Extend the running timer by this much")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Label shown in status and notifications")
	cmd.Flags().BoolVar(&silent, "silent", false, "Do not play the alarm sound")
	cmd.Flags().BoolVar(&notify, "notify", false, "Send a desktop notification when finished")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Block until the timer finishes")
	cmd.Flags().BoolVar(&resume, "resume", false, "Resume a paused timer; a running timer is left as is")
	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "Run the steps of a saved profile")
	cmd.MarkFlagsMutuallyExclusive("profile", "duration")
	cmd.MarkFlagsMutuallyExclusive("profile", "add")

	return cmd
}
