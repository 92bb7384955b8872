package options

import (
	"github.com/spf13/cobra"
)

// ComposeOptions
type ComposeOptions struct {
	Date string
	Star bool
}

func AddComposeArgs(cmd *cobra.Command, o *ComposeOptions) {
	cmd.Flags().StringVar(&o.Date, "date", "",
		`Date of the new entry, example: --date="yesterday at 6pm".`)
	cmd.Flags().BoolVar(&o.Star, "star", false,
		"Star the new entry.")
}

// ReadOptions
type ReadOptions struct {
	Short bool
}

func AddReadArgs(cmd *cobra.Command, o *ReadOptions) {
	cmd.Flags().BoolVarP(&o.Short, "short", "s", false,
		"Show only the date and title of each entry.")
}
