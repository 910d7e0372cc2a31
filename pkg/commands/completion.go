package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(eduhub completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(eduhub completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func subjectCompletions(_ *cobra.Command) []string {
	e, err := loadEnv()
	if err != nil {
		return nil
	}
	subjects, err := e.Hub.Subjects(context.Background())
	if err != nil {
		return nil
	}
	return subjects
}
