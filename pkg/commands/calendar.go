package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/eduhub/pkg/commands/options"
	"tableflip.dev/eduhub/pkg/runner/month"
)

func addCalendar(topLevel *cobra.Command) {
	mo := &options.MonthOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show the class calendar for a month.",
		Example: `
eduhub calendar
eduhub calendar --month next --layout long
eduhub calendar -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			m := month.Month{
				Hub:         e.Hub,
				Today:       today(),
				Focus:       mo.Month,
				Layout:      month.Layout(mo.Layout),
				Interactive: i.Interactive,
				JSON:        output.JSON,
			}
			return output.HandleError(m.Do(cmd.Context()))
		},
	}

	options.AddMonthArgs(cmd, mo)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
