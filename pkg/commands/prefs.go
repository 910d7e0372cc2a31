package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/eduhub/pkg/app"
	"tableflip.dev/eduhub/pkg/runner/prefs"
)

func addPrefs(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change the theme and display name.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	theme := &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the theme.",
		ValidArgs: []string{app.ThemeLight, app.ThemeDark},
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			t := prefs.Theme{Hub: e.Hub}
			if len(args) == 1 {
				t.Set = args[0]
			}
			return t.Do(cmd.Context())
		},
	}

	name := &cobra.Command{
		Use:   "name [display name]",
		Short: "Show or set the display name used as the default uploader.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			n := prefs.Name{Hub: e.Hub}
			if len(args) > 0 {
				n.Set = strings.Join(args, " ")
				n.Update = true
			}
			return n.Do(cmd.Context())
		},
	}

	cmd.AddCommand(theme, name)
	topLevel.AddCommand(cmd)
}
