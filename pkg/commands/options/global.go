// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// GlobalOptions are the persistent flags of every command.
type GlobalOptions struct {
	Journal string
	Config  string
	Debug   bool
}

// AddGlobalArgs registers the persistent flags on the root command.
func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	cmd.PersistentFlags().StringVarP(&o.Journal, "journal", "j", "",
		`Journal to use, as named in the configuration (default "default").`)
	cmd.PersistentFlags().StringVar(&o.Config, "config", "",
		"Configuration file, overrides JRNL_CONFIG.")
	cmd.PersistentFlags().BoolVar(&o.Debug, "debug", false,
		"Print diagnostic logging to stderr.")
}
