package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/jrnl/pkg/app"
	"tableflip.dev/jrnl/pkg/commands/options"
)

func addRead(topLevel *cobra.Command, g *options.GlobalOptions) {
	qo := &options.QueryOptions{}
	ro := &options.ReadOptions{}

	cmd := &cobra.Command{
		Use:   "read [tag...]",
		Short: "Show entries, optionally filtered by tags and dates.",
		Example: `
jrnl read
jrnl read @work @meeting --and
jrnl read --from "last monday" --to today --short
jrnl read --last 2w -n 5
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(g)
			if err != nil {
				return err
			}
			return svc.Run(cmd.Context(), app.Read{Query: qo.Query(args), Short: ro.Short})
		},
	}

	options.AddQueryArgs(cmd, qo)
	options.AddReadArgs(cmd, ro)

	topLevel.AddCommand(cmd)
}
