package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewSettingsCmd(deps *Dependencies) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Edit default duration, alarm and time format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := requireStore(deps)
			if err != nil {
				return err
			}

			if show {
				settings, err := st.GetAllSettings()
				if err != nil {
					return err
				}
				for _, s := range settings {
					fmt.Fprintf(deps.Out, "%s = %s\n", s.Key, s.Value)
				}
				return nil
			}

			prefs, err := st.Preferences()
			if err != nil {
				return err
			}
			edited, err := deps.EditSettings(prefs)
			if err != nil {
				return err
			}
			if err := st.SavePreferences(edited); err != nil {
				return err
			}
			deps.App.Prefs = edited
			formatter(deps).Success("Settings saved")
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the current settings instead of editing them")
	return cmd
}
