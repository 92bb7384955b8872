package options

import (
	"github.com/spf13/cobra"
)

// ExportOptions
type ExportOptions struct {
	Output string
	Render bool
}

func AddExportArgs(cmd *cobra.Command, o *ExportOptions) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", "",
		"Write the export to this file instead of stdout.")
	cmd.Flags().BoolVar(&o.Render, "render", false,
		"Render markdown for the terminal.")
}
