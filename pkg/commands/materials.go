package commands

import (
	"errors"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/eduhub/pkg/commands/options"
	"tableflip.dev/eduhub/pkg/runner/materials"
)

func addMaterials(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "materials",
		Aliases: []string{"material", "m"},
		Short:   base.Wrap80("Browse, upload and preview shared class materials."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addMaterialsList(cmd)
	addMaterialsUpload(cmd)
	addMaterialsDelete(cmd)
	addMaterialsPreview(cmd)
	addMaterialsStats(cmd)
	addMaterialsSubjects(cmd)

	topLevel.AddCommand(cmd)
}

func addMaterialsList(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List materials, optionally filtered and sorted.",
		Example: `
eduhub materials list
eduhub materials list --subject Physics --type zip
eduhub materials list -q okafor --sort name
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			l := materials.List{
				Hub:     e.Hub,
				Subject: fo.Subject,
				Type:    fo.Type,
				Query:   fo.Query,
				Sort:    fo.Sort,
				ShowID:  io.ShowID,
				JSON:    output.JSON,
			}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("subject", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return subjectCompletions(cmd), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

func addMaterialsUpload(topLevel *cobra.Command) {
	u := &materials.Upload{}

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file to the shared materials.",
		Example: `
eduhub materials upload notes.pdf --subject Chemistry
eduhub materials upload ./lab.zip --name "Lab 3 Project.zip" --uploader "Dr. Okafor"
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) == 1 {
				u.Path = args[0]
			}
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			u.Hub = e.Hub
			u.JSON = output.JSON
			return output.HandleError(u.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&u.Name, "name", "", "File name to record, defaults to the base name of the file.")
	cmd.Flags().StringVar(&u.MediaType, "media-type", "", "Media type hint, the payload is sniffed when it can be.")
	cmd.Flags().StringVarP(&u.Subject, "subject", "s", "", "Subject of the material.")
	cmd.Flags().StringVar(&u.Uploader, "uploader", "", "Uploader name, defaults to the stored display name.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addMaterialsDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a material by id.",
		Example: `
eduhub materials list -k
eduhub materials delete 2b1f0c9e-...
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a material id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			d := materials.Delete{Hub: e.Hub, ID: args[0]}
			return output.HandleError(d.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addMaterialsPreview(topLevel *cobra.Command) {
	p := &materials.Preview{}

	cmd := &cobra.Command{
		Use:   "preview <id>",
		Short: "Show how a material can be viewed.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a material id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			p.Hub = e.Hub
			p.ID = args[0]
			p.JSON = output.JSON
			return output.HandleError(p.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&p.SaveTo, "save", "o", "", "Write an uploaded payload to this path.")
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addMaterialsStats(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show material totals, projects and counts per subject.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			s := materials.Stats{Hub: e.Hub, JSON: output.JSON}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addMaterialsSubjects(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "List the subjects of all materials.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return output.HandleError(err)
			}
			s := materials.Subjects{Hub: e.Hub, JSON: output.JSON}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
