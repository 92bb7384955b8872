package info

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gosuri/uitable"

	"tableflip.dev/jrnl/pkg/config"
	"tableflip.dev/jrnl/pkg/crypt"
	"tableflip.dev/jrnl/pkg/store"
)

// Journal describes one configured journal.
type Journal struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Format    string `json:"format"`
	Encrypted bool   `json:"encrypted"`
	Exists    bool   `json:"exists"`
	Error     string `json:"error,omitempty"`
}

// Report is what info prints.
type Report struct {
	ConfigPath      string    `json:"configPath"`
	ConfigFromEnv   bool      `json:"configFromEnv"`
	PasswordFromEnv bool      `json:"passwordFromEnv"`
	CryptoAvailable bool      `json:"cryptoAvailable"`
	Journals        []Journal `json:"journals"`
}

type Info struct {
	Config *config.Config
	JSON   bool
	// Out defaults to os.Stdout.
	Out io.Writer
}

// Collect gathers the report without touching journal contents.
func (n *Info) Collect(_ context.Context) (Report, error) {
	if n.Config == nil {
		return Report{}, fmt.Errorf("info: no configuration loaded")
	}
	r := Report{
		ConfigPath:      n.Config.Path(),
		ConfigFromEnv:   os.Getenv("JRNL_CONFIG") != "",
		PasswordFromEnv: os.Getenv("JRNL_PASSWORD") != "",
		CryptoAvailable: crypt.Available,
	}
	for _, name := range n.Config.Journals() {
		j, err := n.Config.Journal(name)
		if err != nil {
			r.Journals = append(r.Journals, Journal{Name: name, Error: err.Error()})
			continue
		}
		format := "text"
		if store.IsDayOne(j.Path) {
			format = "dayone"
		}
		_, statErr := os.Stat(j.Path)
		r.Journals = append(r.Journals, Journal{
			Name:      name,
			Path:      j.Path,
			Format:    format,
			Encrypted: j.Encrypt,
			Exists:    statErr == nil,
		})
	}
	return r, nil
}

func (n *Info) Do(ctx context.Context) error {
	r, err := n.Collect(ctx)
	if err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = os.Stdout
	}

	if n.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	if r.ConfigFromEnv {
		_, _ = fmt.Fprintln(out, "JRNL_CONFIG found on env, using", r.ConfigPath)
	} else {
		_, _ = fmt.Fprintln(out, "Config:", r.ConfigPath)
	}
	if r.PasswordFromEnv {
		_, _ = fmt.Fprintln(out, "JRNL_PASSWORD is set")
	}
	if !r.CryptoAvailable {
		_, _ = fmt.Fprintln(out, "Encryption support is not built in")
	}

	_, _ = fmt.Fprintln(out, "Journals:")
	if len(r.Journals) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no journals")
		return nil
	}
	tbl := uitable.New()
	tbl.AddRow("  NAME", "FORMAT", "ENCRYPTED", "PATH")
	for _, j := range r.Journals {
		if j.Error != "" {
			tbl.AddRow("  "+j.Name, "-", "-", j.Error)
			continue
		}
		path := j.Path
		if !j.Exists {
			path += " (missing)"
		}
		tbl.AddRow("  "+j.Name, j.Format, j.Encrypted, path)
	}
	_, _ = fmt.Fprintln(out, tbl.String())
	return nil
}
