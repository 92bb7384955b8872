package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/jrnl/pkg/app"
)

// QueryOptions select entries for reading and exporting.
type QueryOptions struct {
	From  string
	To    string
	Last  string
	And   bool
	Limit int
}

// AddQueryArgs registers the filter flags.
func AddQueryArgs(cmd *cobra.Command, o *QueryOptions) {
	cmd.Flags().StringVar(&o.From, "from", "",
		`Only entries on or after this date, example: --from="last monday".`)
	cmd.Flags().StringVar(&o.To, "to", "",
		`Only entries on or before this date, example: --to=yesterday.`)
	cmd.Flags().StringVar(&o.Last, "last", "",
		`Only entries within a window ending now, example: --last=2w.`)
	cmd.Flags().BoolVar(&o.And, "and", false,
		"Entries must carry every given tag instead of any.")
	cmd.Flags().IntVarP(&o.Limit, "limit", "n", 0,
		"Show only the last n matching entries.")
}

// Set reports whether any filter flag was given.
func (o *QueryOptions) Set() bool {
	return o.From != "" || o.To != "" || o.Last != "" || o.And || o.Limit > 0
}

// Query builds the app query for the given tags.
func (o *QueryOptions) Query(tags []string) app.Query {
	return app.Query{
		From:   o.From,
		To:     o.To,
		Last:   o.Last,
		Tags:   tags,
		Strict: o.And,
		Limit:  o.Limit,
	}
}
