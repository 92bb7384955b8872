// Package editor composes entry text in the user's external editor.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// Editor runs Command on a temporary file and returns what was saved.
type Editor struct {
	// Command is the configured editor, arguments included ("vim -f").
	Command string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// Compose opens the editor on a file holding initial and returns the saved
// text. A file removed by the editor yields "" and no error.
func (e *Editor) Compose(ctx context.Context, initial string) (string, error) {
	args := strings.Fields(e.Command)
	if len(args) == 0 {
		return "", errors.New("editor: no editor configured")
	}

	f, err := os.CreateTemp("", "jrnl-*.txt")
	if err != nil {
		return "", fmt.Errorf("editor: temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)
	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", fmt.Errorf("editor: temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("editor: temp file: %w", err)
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if e.Stdin != nil {
		cmd.Stdin = e.Stdin
	}
	if e.Stdout != nil {
		cmd.Stdout = e.Stdout
	}
	if e.Stderr != nil {
		cmd.Stderr = e.Stderr
	}
	log.Debug().Strs("cmd", cmd.Args).Msg("starting editor")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor: %s: %w", args[0], err)
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("editor: read back: %w", err)
	}
	return string(raw), nil
}
