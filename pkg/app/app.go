// Package app runs journal commands against a configured journal.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tableflip.dev/jrnl/pkg/config"
	"tableflip.dev/jrnl/pkg/crypt"
	"tableflip.dev/jrnl/pkg/entry"
	"tableflip.dev/jrnl/pkg/export"
	"tableflip.dev/jrnl/pkg/filter"
	"tableflip.dev/jrnl/pkg/printers"
	"tableflip.dev/jrnl/pkg/store"
	"tableflip.dev/jrnl/pkg/tags"
	"tableflip.dev/jrnl/pkg/timeutil"
)

// Prompter asks the user for input.
type Prompter interface {
	Password(label string) (string, error)
	NewPassword() (string, error)
	Compose() (string, error)
}

// Composer edits entry text externally.
type Composer interface {
	Compose(ctx context.Context, initial string) (string, error)
}

// Settings persists configuration changes.
type Settings interface {
	SetEncrypt(journal string, on bool) error
}

// Service executes commands against one journal. The CLI and the MCP server
// share it.
type Service struct {
	Journal  config.Journal
	Settings Settings
	Prompt   Prompter
	// Editor is used by Compose without text when Journal.Editor is set.
	Editor  Composer
	Printer *printers.PrettyPrint
	// Out receives notices and exports; os.Stdout when nil.
	Out io.Writer
	Now func() time.Time
	// Location is used for flat file header dates, time.Local when nil.
	Location *time.Location
	// KDF overrides the key derivation cost, for tests.
	KDF *crypt.Params
}

var ErrUnknownCommand = errors.New("app: unknown command")

// Run dispatches cmd.
func (s *Service) Run(ctx context.Context, cmd Command) error {
	log.Debug().Str("journal", s.Journal.Name).Str("command", fmt.Sprintf("%T", cmd)).Msg("run")
	switch c := cmd.(type) {
	case Compose:
		return s.compose(ctx, c)
	case Read:
		return s.read(ctx, c)
	case Tags:
		return s.tags(ctx, c)
	case Calendar:
		return s.calendar(ctx, c)
	case Export:
		return s.export(ctx, c)
	case Encrypt:
		return s.encrypt(ctx, c)
	case Decrypt:
		return s.decrypt(ctx, c)
	case DeleteLast:
		return s.deleteLast(ctx)
	}
	return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
}

func (s *Service) out() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}

func (s *Service) notice(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out(), format+"\n", args...)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Resolver is the journal's date resolver.
func (s *Service) Resolver() *timeutil.Resolver {
	r := timeutil.NewResolver(s.Journal.DefaultHour, s.Journal.DefaultMinute)
	r.Now = s.Now
	return r
}

func (s *Service) printer() *printers.PrettyPrint {
	if s.Printer != nil {
		return s.Printer
	}
	return &printers.PrettyPrint{
		Out:        s.out(),
		TimeFormat: s.Journal.TimeFormat,
		LineWrap:   s.Journal.LineWrap,
		Highlight:  s.Journal.Highlight,
	}
}

func (s *Service) password() (string, error) {
	if s.Journal.Password != "" {
		return s.Journal.Password, nil
	}
	if s.Prompt == nil {
		return "", store.ErrPasswordRequired
	}
	return s.Prompt.Password("Password")
}

// Open loads the journal, decrypting it when configured.
func (s *Service) Open(ctx context.Context) (store.Journal, error) {
	return store.Load(ctx, store.Options{
		Name:       s.Journal.Name,
		Path:       s.Journal.Path,
		TagSymbols: s.Journal.TagSymbols,
		TimeFormat: s.Journal.TimeFormat,
		Encrypt:    s.Journal.Encrypt,
		Password:   s.password,
		Notify:     func(msg string) { s.notice("%s", msg) },
		Resolver:   s.Resolver(),
		Now:        s.Now,
		Location:   s.Location,
		KDF:        s.KDF,
	})
}

// Filter turns a Query into filter options.
func (s *Service) Filter(q Query) (filter.Options, error) {
	o := filter.Options{Tags: q.Tags, Strict: q.Strict, Limit: q.Limit}
	r := s.Resolver()
	if q.From != "" {
		t, err := r.ResolveBound(q.From, timeutil.BoundStart)
		if err != nil {
			return o, err
		}
		o.Start = &t
	}
	if q.Last != "" {
		d, _, err := timeutil.ParseWindow(q.Last)
		if err != nil {
			return o, err
		}
		t := s.now().Add(-d)
		if o.Start == nil || t.After(*o.Start) {
			o.Start = &t
		}
	}
	if q.To != "" {
		t, err := r.ResolveBound(q.To, timeutil.BoundEnd)
		if err != nil {
			return o, err
		}
		o.End = &t
	}
	return o, nil
}

// Entries loads the journal and returns the entries matching q.
func (s *Service) Entries(ctx context.Context, q Query) ([]*entry.Entry, error) {
	o, err := s.Filter(q)
	if err != nil {
		return nil, err
	}
	j, err := s.Open(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(j.Entries(), o), nil
}

// Add composes an entry from text and writes the journal once.
func (s *Service) Add(ctx context.Context, text, date string, starred bool) (*entry.Entry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, entry.ErrEmptyEntry
	}
	// Resolve the date before touching the store.
	if date != "" {
		if _, err := s.Resolver().Resolve(date); err != nil {
			return nil, err
		}
	}
	j, err := s.Open(ctx)
	if err != nil {
		return nil, err
	}
	e, err := j.NewEntry(text, date, starred)
	if err != nil {
		return nil, err
	}
	if err := j.Write(ctx, ""); err != nil {
		return nil, err
	}
	return e, nil
}

// TagReport counts tags across the entries matching q.
func (s *Service) TagReport(ctx context.Context, q Query) (tags.Report, error) {
	entries, err := s.Entries(ctx, q)
	if err != nil {
		return tags.Report{}, err
	}
	perEntry := make([][]string, 0, len(entries))
	for _, e := range entries {
		perEntry = append(perEntry, e.Tags())
	}
	return tags.NewReport(perEntry), nil
}

func (s *Service) compose(ctx context.Context, c Compose) error {
	text := c.Text
	if strings.TrimSpace(text) == "" {
		var err error
		switch {
		case s.Journal.Editor != "" && s.Editor != nil:
			text, err = s.Editor.Compose(ctx, "")
		case s.Prompt != nil:
			text, err = s.Prompt.Compose()
		}
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(text) == "" {
		s.notice("[Nothing saved to file]")
		return nil
	}
	if _, err := s.Add(ctx, text, c.Date, c.Starred); err != nil {
		return err
	}
	s.notice("[Entry added to %s journal]", s.Journal.Name)
	return nil
}

func (s *Service) read(ctx context.Context, c Read) error {
	entries, err := s.Entries(ctx, c.Query)
	if err != nil {
		return err
	}
	if c.Short {
		s.printer().Short(entries...)
	} else {
		s.printer().Entries(entries...)
	}
	return nil
}

func (s *Service) tags(ctx context.Context, c Tags) error {
	r, err := s.TagReport(ctx, c.Query)
	if err != nil {
		return err
	}
	s.printer().Tags(r)
	return nil
}

func (s *Service) calendar(ctx context.Context, c Calendar) error {
	entries, err := s.Entries(ctx, c.Query)
	if err != nil {
		return err
	}
	s.printer().Calendar(entries...)
	return nil
}

func (s *Service) export(ctx context.Context, c Export) error {
	entries, err := s.Entries(ctx, c.Query)
	if err != nil {
		return err
	}
	o := export.Options{TimeFormat: s.Journal.TimeFormat, Render: c.Render, Width: s.Journal.LineWrap}
	if c.Output == "" {
		return export.Write(s.out(), c.Kind, entries, o)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("app: export: %w", err)
	}
	if err := export.Write(f, c.Kind, entries, o); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("app: export: %w", err)
	}
	s.notice("[Journal exported to %s]", c.Output)
	return nil
}

func (s *Service) encrypt(ctx context.Context, c Encrypt) error {
	if !crypt.Available {
		return crypt.ErrUnavailable
	}
	j, err := s.Open(ctx)
	if err != nil {
		return err
	}
	if store.IsDayOne(j.Path()) {
		return store.ErrDayOneEncryption
	}

	// Re-keying always asks for the new password.
	pw := s.Journal.Password
	if pw == "" || j.Mode() == crypt.Encrypted {
		if s.Prompt == nil {
			return store.ErrPasswordRequired
		}
		if pw, err = s.Prompt.NewPassword(); err != nil {
			return err
		}
	}
	if err := j.EnableEncryption(pw); err != nil {
		return err
	}
	if err := j.Write(ctx, c.File); err != nil {
		return err
	}
	if c.File == "" && s.Settings != nil {
		if err := s.Settings.SetEncrypt(s.Journal.Name, true); err != nil {
			return err
		}
	}
	s.notice("Journal encrypted to %s.", target(c.File, j.Path()))
	return nil
}

func (s *Service) decrypt(ctx context.Context, c Decrypt) error {
	if !crypt.Available {
		return crypt.ErrUnavailable
	}
	j, err := s.Open(ctx)
	if err != nil {
		return err
	}
	if err := j.DisableEncryption(); err != nil {
		return err
	}
	if err := j.Write(ctx, c.File); err != nil {
		return err
	}
	if c.File == "" && s.Settings != nil {
		if err := s.Settings.SetEncrypt(s.Journal.Name, false); err != nil {
			return err
		}
	}
	s.notice("Journal decrypted to %s.", target(c.File, j.Path()))
	return nil
}

func (s *Service) deleteLast(ctx context.Context) error {
	j, err := s.Open(ctx)
	if err != nil {
		return err
	}
	last, err := j.DeleteLast()
	if err != nil {
		return err
	}
	if err := j.Write(ctx, ""); err != nil {
		return err
	}
	s.notice("[Deleted Entry:]")
	s.printer().Entries(last)
	return nil
}

func target(file, path string) string {
	if file != "" {
		return file
	}
	return path
}
