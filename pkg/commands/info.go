package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/jrnl/pkg/commands/options"
	"tableflip.dev/jrnl/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command, g *options.GlobalOptions) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where journals are stored.",
		Example: `
jrnl info
jrnl info --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return options.HandleError(oo, err)
			}
			s := info.Info{
				Config: cfg,
				JSON:   oo.JSON,
			}
			err = s.Do(cmd.Context())
			return options.HandleError(oo, err)
		},
	}

	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
