package commands

import (
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tableflip.dev/jrnl/pkg/app"
	"tableflip.dev/jrnl/pkg/commands/options"
	"tableflip.dev/jrnl/pkg/config"
	"tableflip.dev/jrnl/pkg/editor"
	"tableflip.dev/jrnl/pkg/printers"
	"tableflip.dev/jrnl/pkg/prompt"
)

func setupLogging(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    color.NoColor,
	})
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("debug logging enabled")
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

func loadConfig(g *options.GlobalOptions) (*config.Config, error) {
	return config.Load(g.Config, func(msg string) {
		_, _ = color.New(color.Faint).Fprintln(os.Stderr, msg)
	})
}

func hasJournal(cfg *config.Config, name string) bool {
	for _, j := range cfg.Journals() {
		if j == name {
			return true
		}
	}
	return false
}

// newService wires the named journal to the terminal.
func newService(cfg *config.Config, name string) (*app.Service, error) {
	j, err := cfg.Journal(name)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("journal", j.Name).Str("path", j.Path).Bool("encrypt", j.Encrypt).Msg("journal selected")

	return &app.Service{
		Journal:  j,
		Settings: cfg,
		Prompt:   prompt.New(),
		Editor:   &editor.Editor{Command: j.Editor},
		Printer: &printers.PrettyPrint{
			Out:        os.Stdout,
			TimeFormat: j.TimeFormat,
			LineWrap:   j.LineWrap,
			Highlight:  j.Highlight && !color.NoColor,
		},
	}, nil
}

// openService loads the configuration and the journal named by --journal.
func openService(g *options.GlobalOptions) (*app.Service, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	return newService(cfg, g.Journal)
}
