package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jkallio/pomodoro-cli/internal/profile"
	"github.com/jkallio/pomodoro-cli/internal/store"
)

func NewProfileCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage reusable timer sequences",
		Long: "A profile is a named sequence of durations, e.g. focus and break steps,\n" +
			"started with 'start --profile NAME'.",
	}

	cmd.AddCommand(newProfileAddCmd(deps))
	cmd.AddCommand(newProfileListCmd(deps))
	cmd.AddCommand(newProfileShowCmd(deps))
	cmd.AddCommand(newProfileRemoveCmd(deps))
	cmd.AddCommand(newProfileImportCmd(deps))
	cmd.AddCommand(newProfileExportCmd(deps))
	return cmd
}

func newProfileAddCmd(deps *Dependencies) *cobra.Command {
	var (
		sequence  []string
		messages  []string
		alarmFile string
		iconFile  string
		silent    bool
		notify    bool
		repeat    int
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create or replace a profile",
		Example: "  pomodoro-cli profile add classic -s 25m,5m,25m,5m,25m,15m \\\n" +
			"    -m Focus -m Break -m Focus -m Break -m Focus -m \"Long break\"",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := requireStore(deps)
			if err != nil {
				return err
			}

			p := store.Profile{
				Name:      args[0],
				Messages:  messages,
				AlarmFile: alarmFile,
				IconFile:  iconFile,
				Silent:    silent,
				Notify:    notify,
				Repeat:    repeat,
			}
			for _, s := range sequence {
				secs, err := parseDuration("sequence", s)
				if err != nil {
					return err
				}
				p.Sequence = append(p.Sequence, secs)
			}
			if err := st.SaveProfile(p); err != nil {
				return err
			}
			formatter(deps).Success(fmt.Sprintf("Profile %q saved", p.Name))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&sequence, "sequence", "s", nil, "Comma separated step durations")
	cmd.Flags().StringArrayVarP(&messages, "message", "m", nil, "Message for the next step (repeatable)")
	cmd.Flags().StringVar(&alarmFile, "alarm", "", "Alarm sound for this profile (mp3 or wav)")
	cmd.Flags().StringVar(&iconFile, "icon", "", "Notification icon for this profile")
	cmd.Flags().BoolVar(&silent, "silent", false, "Do not play the alarm sound")
	cmd.Flags().BoolVar(&notify, "notify", false, "Send a desktop notification after each step")
	cmd.Flags().IntVar(&repeat, "repeat", 0, "Run the sequence this many extra times")
	cmd.MarkFlagRequired("sequence")
	return cmd
}

func newProfileListCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := requireStore(deps)
			if err != nil {
				return err
			}
			profiles, err := st.ListProfiles()
			if err != nil {
				return err
			}
			formatter(deps).Profiles(profiles)
			return nil
		},
	}
}

func newProfileShowCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show one profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := requireStore(deps)
			if err != nil {
				return err
			}
			p, err := st.GetProfile(args[0])
			if err != nil {
				return err
			}
			formatter(deps).Profile(*p)
			return nil
		},
	}
}

func newProfileRemoveCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a profile",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := requireStore(deps)
			if err != nil {
				return err
			}
			if err := st.DeleteProfile(args[0]); err != nil {
				return err
			}
			formatter(deps).Success(fmt.Sprintf("Profile %q removed", args[0]))
			return nil
		},
	}
}

func newProfileImportCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load a profile from a json, yaml or toml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := requireStore(deps)
			if err != nil {
				return err
			}
			p, err := profile.Read(args[0])
			if err != nil {
				return err
			}
			if err := st.SaveProfile(p); err != nil {
				return err
			}
			formatter(deps).Success(fmt.Sprintf("Profile %q imported", p.Name))
			return nil
		},
	}
}

func newProfileExportCmd(deps *Dependencies) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "export NAME",
		Short: "Write a profile to a json, yaml or toml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := requireStore(deps)
			if err != nil {
				return err
			}
			p, err := st.GetProfile(args[0])
			if err != nil {
				return err
			}
			if path == "" {
				path = defaultProfilePath(deps, p.Name)
			}
			if err := profile.Write(path, *p); err != nil {
				return err
			}
			formatter(deps).Success(fmt.Sprintf("Profile %q written to %s", p.Name, path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "output", "o", "", "Output file (default <config dir>/profiles/<name>.json)")
	return cmd
}

func defaultProfilePath(deps *Dependencies, name string) string {
	dir := "."
	if deps.Config != nil && deps.Config.Dir != "" {
		dir = deps.Config.Dir
	}
	return filepath.Join(dir, "profiles", profile.FileName(name)+".json")
}
