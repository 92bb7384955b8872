package app

import (
	"tableflip.dev/jrnl/pkg/export"
)

// Command is one explicit request to the journal. Exactly one variant runs
// per invocation.
type Command interface {
	command()
}

// Query selects entries. Dates are free-form expressions resolved with the
// journal's resolver; Last is a window such as "2w".
type Query struct {
	From   string
	To     string
	Last   string
	Tags   []string
	Strict bool
	Limit  int
}

// Compose adds an entry. Empty Text asks the editor or the prompt.
type Compose struct {
	Text    string
	Date    string
	Starred bool
}

// Read prints the matching entries.
type Read struct {
	Query
	Short bool
}

// Tags prints the tag report of the matching entries.
type Tags struct {
	Query
}

// Calendar prints month grids marking days with entries.
type Calendar struct {
	Query
}

// Export writes the matching entries as JSON or Markdown, to Output when set.
type Export struct {
	Query
	Kind   export.Kind
	Output string
	Render bool
}

// Encrypt seals the journal, in place or into File.
type Encrypt struct {
	File string
}

// Decrypt stores the journal as plain text, in place or into File.
type Decrypt struct {
	File string
}

// DeleteLast removes the chronologically last entry.
type DeleteLast struct{}

func (Compose) command()    {}
func (Read) command()       {}
func (Tags) command()       {}
func (Calendar) command()   {}
func (Export) command()     {}
func (Encrypt) command()    {}
func (Decrypt) command()    {}
func (DeleteLast) command() {}
