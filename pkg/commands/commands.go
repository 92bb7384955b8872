package commands

import (
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/jrnl/pkg/app"
	"tableflip.dev/jrnl/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {
	g := &options.GlobalOptions{}
	co := &options.ComposeOptions{}
	qo := &options.QueryOptions{}
	ro := &options.ReadOptions{}

	cmd := &cobra.Command{
		Use:   "jrnl [journal] [text...]",
		Short: base.Wrap80("A journal for the command line."),
		Long: base.Wrap80(`Write an entry by passing its text, or run without text to compose in your editor. ` +
			`Passing only tags, or any filter flag, reads entries instead. ` +
			`If the first word names a configured journal, that journal is used.`),
		Example: `
jrnl Met @ana for lunch. Great tacos.
jrnl --date "yesterday at 6pm" Ran 5k @running
jrnl work Finished the quarterly report
jrnl @running -n 3
`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging(g.Debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			name := g.Journal
			if name == "" && len(args) > 0 && hasJournal(cfg, args[0]) {
				name, args = args[0], args[1:]
			}
			svc, err := newService(cfg, name)
			if err != nil {
				return err
			}

			if readMode(co, qo, ro, args, svc.Journal.TagSymbols) {
				return svc.Run(cmd.Context(), app.Read{Query: qo.Query(args), Short: ro.Short})
			}
			return svc.Run(cmd.Context(), app.Compose{
				Text:    strings.Join(args, " "),
				Date:    co.Date,
				Starred: co.Star,
			})
		},
	}

	options.AddGlobalArgs(cmd, g)
	options.AddComposeArgs(cmd, co)
	options.AddQueryArgs(cmd, qo)
	options.AddReadArgs(cmd, ro)
	registerJournalCompletion(cmd, g)

	AddCommands(cmd, g)
	return cmd
}

func AddCommands(topLevel *cobra.Command, g *options.GlobalOptions) {
	addCompose(topLevel, g)
	addRead(topLevel, g)
	addTags(topLevel, g)
	addCalendar(topLevel, g)
	addExport(topLevel, g)
	addEncrypt(topLevel, g)
	addDecrypt(topLevel, g)
	addDeleteLast(topLevel, g)
	addInfo(topLevel, g)
	addVersion(topLevel)
	addMCP(topLevel, g)
	addCompletions(topLevel)
}

// readMode decides between reading and composing for the bare jrnl command:
// any filter flag, or text made only of tags without a date, means read.
func readMode(co *options.ComposeOptions, qo *options.QueryOptions, ro *options.ReadOptions, args []string, symbols string) bool {
	if qo.Set() || ro.Short {
		return true
	}
	if co.Date != "" || len(args) == 0 {
		return false
	}
	for _, word := range strings.Fields(strings.Join(args, " ")) {
		r, _ := utf8.DecodeRuneInString(word)
		if !strings.ContainsRune(symbols, r) {
			return false
		}
	}
	return true
}
