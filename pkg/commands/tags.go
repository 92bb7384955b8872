package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/jrnl/pkg/app"
	"tableflip.dev/jrnl/pkg/commands/options"
)

func addTags(topLevel *cobra.Command, g *options.GlobalOptions) {
	qo := &options.QueryOptions{}

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Count how many entries use each tag.",
		Example: `
jrnl tags
jrnl tags --from 2024-01-01
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := openService(g)
			if err != nil {
				return err
			}
			return svc.Run(cmd.Context(), app.Tags{Query: qo.Query(nil)})
		},
	}

	options.AddQueryArgs(cmd, qo)

	topLevel.AddCommand(cmd)
}

func addCalendar(topLevel *cobra.Command, g *options.GlobalOptions) {
	qo := &options.QueryOptions{}

	cmd := &cobra.Command{
		Use:   "calendar [tag...]",
		Short: "Show month grids with the days that have entries in bold.",
		Example: `
jrnl calendar --last 3mo
jrnl calendar @running --from 2024-01-01
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(g)
			if err != nil {
				return err
			}
			return svc.Run(cmd.Context(), app.Calendar{Query: qo.Query(args)})
		},
	}

	options.AddQueryArgs(cmd, qo)

	topLevel.AddCommand(cmd)
}
