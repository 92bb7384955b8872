// Package prompt asks the user for passwords and entry text.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
)

// ErrMismatch is returned when a new password is not confirmed.
var ErrMismatch = errors.New("prompt: passwords do not match")

// Prompter reads answers from a terminal, or line by line from a pipe.
type Prompter struct {
	In  io.ReadCloser
	Out io.WriteCloser

	lines *bufio.Reader
}

// New returns a Prompter on the process's standard streams.
func New() *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stdout}
}

// Interactive reports whether input comes from a terminal.
func (p *Prompter) Interactive() bool {
	f, ok := p.in().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Prompter) in() io.ReadCloser {
	if p.In == nil {
		return os.Stdin
	}
	return p.In
}

func (p *Prompter) out() io.WriteCloser {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// Password asks for a password without echoing it.
func (p *Prompter) Password(label string) (string, error) {
	if !p.Interactive() {
		return p.line()
	}
	pr := promptui.Prompt{
		Label:  label,
		Mask:   '*',
		Stdin:  p.in(),
		Stdout: p.out(),
		Validate: func(s string) error {
			if s == "" {
				return errors.New("empty password")
			}
			return nil
		},
	}
	return pr.Run()
}

// NewPassword asks for a password twice.
func (p *Prompter) NewPassword() (string, error) {
	pw, err := p.Password("Enter new password")
	if err != nil {
		return "", err
	}
	again, err := p.Password("Enter password again")
	if err != nil {
		return "", err
	}
	if pw != again {
		return "", ErrMismatch
	}
	return pw, nil
}

// Compose reads entry text: one line at a terminal, everything when piped.
func (p *Prompter) Compose() (string, error) {
	if p.Interactive() {
		_, _ = fmt.Fprint(p.out(), "[Compose Entry] ")
		return p.line()
	}
	raw, err := io.ReadAll(p.reader())
	if err != nil {
		return "", fmt.Errorf("prompt: read stdin: %w", err)
	}
	return string(raw), nil
}

func (p *Prompter) reader() *bufio.Reader {
	if p.lines == nil {
		p.lines = bufio.NewReader(p.in())
	}
	return p.lines
}

func (p *Prompter) line() (string, error) {
	s, err := p.reader().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("prompt: no input: %w", err)
		}
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}
