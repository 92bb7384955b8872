package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/jrnl/pkg/app"
	"tableflip.dev/jrnl/pkg/commands/options"
)

func addEncrypt(topLevel *cobra.Command, g *options.GlobalOptions) {
	cmd := &cobra.Command{
		Use:   "encrypt [file]",
		Short: "Encrypt the journal in place, or into a new file.",
		Long: `Encrypts the journal with a new password. Without a file the journal is
rewritten in place and the configuration is updated to read it encrypted.
The password is never stored; set JRNL_PASSWORD to avoid the prompt.`,
		Example: `
jrnl encrypt
jrnl -j work encrypt ~/work-backup.txt
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(g)
			if err != nil {
				return err
			}
			return svc.Run(cmd.Context(), app.Encrypt{File: firstArg(args)})
		},
	}

	topLevel.AddCommand(cmd)
}

func addDecrypt(topLevel *cobra.Command, g *options.GlobalOptions) {
	cmd := &cobra.Command{
		Use:   "decrypt [file]",
		Short: "Decrypt the journal in place, or into a new file.",
		Example: `
jrnl decrypt
jrnl decrypt ~/plain-copy.txt
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(g)
			if err != nil {
				return err
			}
			return svc.Run(cmd.Context(), app.Decrypt{File: firstArg(args)})
		},
	}

	topLevel.AddCommand(cmd)
}

func addDeleteLast(topLevel *cobra.Command, g *options.GlobalOptions) {
	cmd := &cobra.Command{
		Use:   "delete-last",
		Short: "Delete the most recent entry.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := openService(g)
			if err != nil {
				return err
			}
			return svc.Run(cmd.Context(), app.DeleteLast{})
		},
	}

	topLevel.AddCommand(cmd)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
