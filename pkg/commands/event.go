package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/eduhub/pkg/commands/options"
	"tableflip.dev/eduhub/pkg/runner/events"
)

func addEvent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events", "e"},
		Short:   base.Wrap80("Add, edit, delete and list calendar events."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEventAdd(cmd)
	addEventEdit(cmd)
	addEventDelete(cmd)
	addEventList(cmd)

	topLevel.AddCommand(cmd)
}

func addEventAdd(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}
	var subject string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an event",
		Example: `
eduhub event add Chemistry quiz --on=2025-10-21 --subject Chemistry
eduhub event add Field trip --on=+1w
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an event title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			s := events.Add{
				Hub:     e.Hub,
				Today:   today(),
				On:      oo.On,
				Title:   strings.Join(args, " "),
				Subject: subject,
				ShowID:  io.ShowID,
				JSON:    output.JSON,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Subject of the event.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addEventEdit(topLevel *cobra.Command) {
	var subject string

	cmd := &cobra.Command{
		Use:   "edit <id> <title>",
		Short: "Change an event's title and subject. The date stays.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires an event id and a title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			s := events.Edit{
				Hub:     e.Hub,
				ID:      args[0],
				Title:   strings.Join(args[1:], " "),
				Subject: subject,
				JSON:    output.JSON,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Subject of the event.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addEventDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an event by id.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires an event id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			s := events.Delete{Hub: e.Hub, ID: args[0]}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addEventList(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the events on a day.",
		Example: `
eduhub event list
eduhub event list --on tomorrow -k
eduhub event list --all
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			s := events.List{
				Hub:    e.Hub,
				Today:  today(),
				On:     oo.On,
				All:    all,
				ShowID: io.ShowID,
				JSON:   output.JSON,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVarP(&all, "all", "a", false, "List every event.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
