package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/jrnl/pkg/app"
	"tableflip.dev/jrnl/pkg/commands/options"
)

func addCompose(topLevel *cobra.Command, g *options.GlobalOptions) {
	co := &options.ComposeOptions{}

	cmd := &cobra.Command{
		Use:     "compose [text...]",
		Aliases: []string{"add", "write"},
		Short:   "Add an entry; without text, open the editor.",
		Example: `
jrnl compose Walked the dog. It rained @dog
jrnl compose --star --date "last friday" Shipped it
jrnl compose
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(g)
			if err != nil {
				return err
			}
			return svc.Run(cmd.Context(), app.Compose{
				Text:    strings.Join(args, " "),
				Date:    co.Date,
				Starred: co.Star,
			})
		},
	}

	options.AddComposeArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
