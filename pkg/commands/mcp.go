package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/jrnl/pkg/commands/options"
	"tableflip.dev/jrnl/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command, g *options.GlobalOptions) {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server on stdio that exposes the journal's entries, tags and
entry creation to a local client. Encrypted journals need JRNL_PASSWORD set,
since stdin carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := openService(g)
			if err != nil {
				return err
			}
			// Stdio carries the protocol: no prompts, notices go to stderr.
			svc.Prompt = nil
			svc.Editor = nil
			svc.Out = os.Stderr
			svc.Printer = nil

			runner := mcp.Runner{
				Journal: svc,
				Name:    "jrnl",
				Version: version,
			}
			return runner.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
