package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/jrnl/pkg/app"
	"tableflip.dev/jrnl/pkg/commands/options"
	"tableflip.dev/jrnl/pkg/export"
)

func addExport(topLevel *cobra.Command, g *options.GlobalOptions) {
	qo := &options.QueryOptions{}
	eo := &options.ExportOptions{}

	cmd := &cobra.Command{
		Use:       "export json|markdown [tag...]",
		Short:     "Export entries as JSON or Markdown.",
		ValidArgs: []string{string(export.JSON), string(export.Markdown)},
		Example: `
jrnl export json > journal.json
jrnl export markdown @travel --output travel.md
jrnl export markdown --last 1w --render
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := export.ParseKind(args[0])
			if err != nil {
				return err
			}
			svc, err := openService(g)
			if err != nil {
				return err
			}
			return svc.Run(cmd.Context(), app.Export{
				Query:  qo.Query(args[1:]),
				Kind:   kind,
				Output: eo.Output,
				Render: eo.Render,
			})
		},
	}

	options.AddQueryArgs(cmd, qo)
	options.AddExportArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}
